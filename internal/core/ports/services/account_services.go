package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// AccountReaderSvc defines read operations over the genealogy tree.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetGenealogy returns the account with per-leg descendant counts.
	GetGenealogy(ctx context.Context, accountID string) (*dto.GenealogyResponse, error)
}

// AccountWriterSvc defines the account creation and upgrade flows. Both
// consume an activation code and run the compensation plan atomically with
// placement.
type AccountWriterSvc interface {
	// CreateAccount validates the code and the requested tree slot, persists
	// the account, runs the compensation plan, and activates. Placement
	// follows the extreme-side rule: the requested slot must be free and the
	// new node must extend the outer edge of the requested leg.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpgradeAccount re-runs the plan for an existing account with an
	// UPGRADE code, moving the account to the code's package tier.
	UpgradeAccount(ctx context.Context, req dto.UpgradeAccountRequest, actorID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
