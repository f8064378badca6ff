package repositories

import (
	"context"
	"time"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// CodeRepositoryFacade persists activation codes and applies the status state
// machine at the row level.
type CodeRepositoryFacade interface {
	SaveCodes(ctx context.Context, codes []domain.Code) error
	FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error)
	FindCodeByValue(ctx context.Context, code string) (*domain.Code, error)
	ListCodesByOwner(ctx context.Context, ownerID string) ([]domain.Code, error)

	// MarkCodeUsed performs the one-way ACTIVE->USED transition as a
	// conditional update. A second concurrent consumer gets ErrConflict.
	MarkCodeUsed(ctx context.Context, codeID string, updatedBy string, at time.Time) error

	// UpdateCodeStatus transitions from one expected status to another,
	// failing with ErrConflict when the row is no longer in the expected
	// status. Used for the admin toggle and lazy expiration.
	UpdateCodeStatus(ctx context.Context, codeID string, from, to domain.CodeStatus, updatedBy string, at time.Time) error
}
