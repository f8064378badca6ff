package repositories

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// UserRepositoryFacade persists back-office login identities.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
