package repositories

import (
	"context"
	"time"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// AccountRepositoryFacade exposes persistence and directory queries over the
// binary genealogy tree and the sponsor chain.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, at time.Time) error
	UpdateAccountPackage(ctx context.Context, accountID string, packageID string, updatedBy string, at time.Time) error

	// FindChildOnSide returns the child occupying the given leg of a parent,
	// or ErrNotFound when the slot is free.
	FindChildOnSide(ctx context.Context, parentID string, side domain.ParentSide) (*domain.Account, error)

	// GetAllParentsWithSide walks the parent edge upward, nearest ancestor
	// first. Each link carries the side of the subtree the starting account
	// sits in relative to that ancestor, and the ancestor's package when it
	// still exists.
	GetAllParentsWithSide(ctx context.Context, accountID string) ([]domain.ParentLink, error)

	// GetTwoLevelReferrers follows the referrer edge, capped at two levels.
	GetTwoLevelReferrers(ctx context.Context, accountID string) ([]domain.ReferrerLink, error)

	// CountDirectReferralsByPackage counts direct referrals at a package
	// tier, excluding accounts activated through FREE_SLOT codes.
	CountDirectReferralsByPackage(ctx context.Context, accountID, packageID string) (int, error)

	// CountDescendantsBySide counts all accounts in one leg of the subtree.
	CountDescendantsBySide(ctx context.Context, accountID string, side domain.ParentSide) (int, error)

	// FindAccountByActivationCodeID is the reverse lookup used to confirm a
	// code has actually been consumed by an account.
	FindAccountByActivationCodeID(ctx context.Context, codeID string) (*domain.Account, error)
}
