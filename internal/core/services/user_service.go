package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
	"github.com/odysseyhq/odyssey-backend/internal/platform/config"
	"github.com/odysseyhq/odyssey-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
	clock    Clock
}

// NewUserService creates the back-office user service.
func NewUserService(repos portsrepo.RepositoryProvider, cfg *config.Config, clock Clock) portssvc.UserSvcFacade {
	return &userService{userRepo: repos.UserRepo, cfg: cfg, clock: clock}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.clock.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		logger.Warn("login failed", slog.String("username", req.Username))
		return nil, err
	}
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}
