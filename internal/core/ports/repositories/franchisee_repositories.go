package repositories

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// FranchiseeRepositoryFacade persists franchise holders.
type FranchiseeRepositoryFacade interface {
	SaveFranchisee(ctx context.Context, franchisee domain.Franchisee) error
	FindFranchiseeByID(ctx context.Context, franchiseeID string) (*domain.Franchisee, error)

	// FindFranchiseeByActivationCodeID is the reverse lookup used to confirm
	// a franchise code has been consumed.
	FindFranchiseeByActivationCodeID(ctx context.Context, codeID string) (*domain.Franchisee, error)
}
