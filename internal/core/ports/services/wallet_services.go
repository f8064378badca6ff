package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// WalletReaderSvc defines derived-balance and ledger reads. Balances are
// computed from activities on every call.
type WalletReaderSvc interface {
	// GetBalance returns the signed balance of one wallet.
	GetBalance(ctx context.Context, accountID string, wallet domain.WalletType) (decimal.Decimal, error)

	// GetWalletSummary returns balances for every wallet of an account.
	GetWalletSummary(ctx context.Context, accountID string) (*dto.WalletSummaryResponse, error)

	// ListActivities pages through the ledger of one wallet, newest first.
	ListActivities(ctx context.Context, accountID string, wallet domain.WalletType, limit int, nextToken *string) (*dto.ListActivitiesResponse, error)
}

// WalletSvcFacade combines wallet-related service interfaces.
type WalletSvcFacade interface {
	WalletReaderSvc
}
