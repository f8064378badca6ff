package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// ActivityRepositoryFacade is the append-only ledger port. Balances are
// always derived by summing rows; nothing here mutates a posted amount.
type ActivityRepositoryFacade interface {
	CreateActivity(ctx context.Context, activity domain.Activity) error
	FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error)

	// SumActivities sums signed amounts for an account and wallet, optionally
	// restricted to the given activity types.
	SumActivities(ctx context.Context, accountID string, wallet domain.WalletType, types ...domain.ActivityType) (decimal.Decimal, error)

	// SumActivitiesBetween sums signed amounts of one activity type posted in
	// [from, to). Used for the daily sales-match cap.
	SumActivitiesBetween(ctx context.Context, accountID string, wallet domain.WalletType, activityType domain.ActivityType, from, to time.Time) (decimal.Decimal, error)

	// SumWalletSigned computes the spendable balance of a wallet: CASHOUT
	// rows count negative unless DENIED, everything else keeps its sign.
	SumWalletSigned(ctx context.Context, accountID string, wallet domain.WalletType) (decimal.Decimal, error)

	// HasCashoutBetween reports whether any CASHOUT was posted in [from, to).
	HasCashoutBetween(ctx context.Context, accountID string, wallet domain.WalletType, from, to time.Time) (bool, error)

	// HasPendingCashout reports whether an open (REQUESTED or APPROVED)
	// cashout exists for the account and wallet.
	HasPendingCashout(ctx context.Context, accountID string, wallet domain.WalletType) (bool, error)

	// UpdateActivityStatus advances a cashout activity through its status
	// walk. Only the status and note change; amounts stay immutable.
	UpdateActivityStatus(ctx context.Context, activityID string, status domain.ActivityStatus, note string, updatedBy string, at time.Time) error

	// ListActivities returns a page of activities for an account and wallet,
	// newest first, with token pagination.
	ListActivities(ctx context.Context, accountID string, wallet domain.WalletType, limit int, nextToken *string) ([]domain.Activity, *string, error)
}

// ActivityRepositoryWithTx adds all-or-nothing execution. The compensation
// engine posts its whole multi-phase sequence through one WithTx call so a
// failure mid-sequence rolls every posting back.
type ActivityRepositoryWithTx interface {
	ActivityRepositoryFacade

	WithTx(ctx context.Context, fn func(txRepo ActivityRepositoryFacade) error) error
}
