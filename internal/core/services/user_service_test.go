package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/core/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/platform/config"
	"github.com/odysseyhq/odyssey-backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	cfg      *config.Config
	now      time.Time
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "odyssey-test",
	}
	suite.now = time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewUserService(portsrepo.RepositoryProvider{
		UserRepo: suite.userRepo,
	}, suite.cfg, fixedClock{now: suite.now})
}

func (suite *UserServiceTestSuite) hashedUser(username, password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       "user-1",
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
	}
}

func (suite *UserServiceTestSuite) TestCreateUserHashesPassword() {
	ctx := context.Background()

	suite.userRepo.On("FindUserByUsername", ctx, "maria").Return(nil, apperrors.ErrNotFound).Once()
	suite.userRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "maria" &&
			user.Role == domain.RoleStaff &&
			user.PasswordHash != "" &&
			user.PasswordHash != "correct-horse" &&
			utils.CheckPasswordHash("correct-horse", user.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "maria",
		Password: "correct-horse",
		Role:     "STAFF",
	}, "admin-1")

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(suite.now, user.CreatedAt)
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUserRejectsDuplicateUsername() {
	ctx := context.Background()
	existing := suite.hashedUser("maria", "whatever-pass")

	suite.userRepo.On("FindUserByUsername", ctx, "maria").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "maria",
		Password: "correct-horse",
		Role:     "STAFF",
	}, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.userRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLoginIssuesToken() {
	ctx := context.Background()
	user := suite.hashedUser("maria", "correct-horse")

	suite.userRepo.On("FindUserByUsername", ctx, "maria").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "maria", Password: "correct-horse"})

	suite.Require().NoError(err)
	suite.Equal("user-1", resp.UserID)
	suite.Equal("STAFF", resp.Role)
	suite.Require().NotEmpty(resp.Token)

	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("odyssey-test", claims.Issuer)
}

func (suite *UserServiceTestSuite) TestLoginRejectsWrongPassword() {
	ctx := context.Background()
	user := suite.hashedUser("maria", "correct-horse")

	suite.userRepo.On("FindUserByUsername", ctx, "maria").Return(user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "maria", Password: "wrong-horse"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestLoginHidesUnknownUsername() {
	ctx := context.Background()

	suite.userRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever-pass"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
