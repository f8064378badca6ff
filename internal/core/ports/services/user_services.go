package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// UserReaderSvc defines read operations for back-office users.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for back-office users.
type UserWriterSvc interface {
	// CreateUser registers a user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)
}

// UserAuthSvc defines authentication operations.
type UserAuthSvc interface {
	// AuthenticateUser verifies credentials and returns the user.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// Login authenticates and issues a signed bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
