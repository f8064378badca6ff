package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/core/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/handlers"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetGenealogy(ctx context.Context, accountID string) (*dto.GenealogyResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenealogyResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpgradeAccount(ctx context.Context, req dto.UpgradeAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "odyssey-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	actorID := uuid.NewString()
	parentID := uuid.NewString()
	createReq := dto.CreateAccountRequest{
		ActivationCode:  "AB12CD34EF",
		ParentAccountID: parentID,
		ParentSide:      "LEFT",
		FirstName:       "Maria",
		LastName:        "Santos",
	}
	side := domain.SideLeft
	created := &domain.Account{
		AccountID:  uuid.NewString(),
		ParentID:   &parentID,
		ParentSide: &side,
		PackageID:  uuid.NewString(),
		FirstName:  "Maria",
		LastName:   "Santos",
		Status:     domain.AccountActive,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.ActivationCode == createReq.ActivationCode &&
				req.ParentAccountID == parentID &&
				req.ParentSide == "LEFT"
		}),
		actorID,
	).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", suite.generateTestToken(actorID), createReq)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("ACTIVE", resp.Status)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_SlotTaken() {
	actorID := uuid.NewString()
	createReq := dto.CreateAccountRequest{
		ActivationCode:  "AB12CD34EF",
		ParentAccountID: uuid.NewString(),
		ParentSide:      "RIGHT",
		FirstName:       "Maria",
		LastName:        "Santos",
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("dto.CreateAccountRequest"), actorID,
	).Return(nil, services.ErrSlotTaken).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", suite.generateTestToken(actorID), createReq)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_CodeAlreadyConsumed() {
	actorID := uuid.NewString()
	createReq := dto.CreateAccountRequest{
		ActivationCode:  "AB12CD34EF",
		ParentAccountID: uuid.NewString(),
		ParentSide:      "LEFT",
		FirstName:       "Maria",
		LastName:        "Santos",
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("dto.CreateAccountRequest"), actorID,
	).Return(nil, fmt.Errorf("%w: AB12CD34EF", services.ErrPlanAlreadyRan)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", suite.generateTestToken(actorID), createReq)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_RequiresToken() {
	createReq := dto.CreateAccountRequest{
		ActivationCode:  "AB12CD34EF",
		ParentAccountID: uuid.NewString(),
		ParentSide:      "LEFT",
		FirstName:       "Maria",
		LastName:        "Santos",
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", "", createReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	actorID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.AnythingOfType("*context.valueCtx"), accountID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID, suite.generateTestToken(actorID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetGenealogy_Success() {
	actorID := uuid.NewString()
	accountID := uuid.NewString()
	expected := &dto.GenealogyResponse{
		Account:            dto.AccountResponse{AccountID: accountID, Status: "ACTIVE"},
		LeftChildrenCount:  4,
		RightChildrenCount: 9,
	}

	suite.mockAccountService.On("GetGenealogy",
		mock.AnythingOfType("*context.valueCtx"), accountID,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/genealogy", accountID), suite.generateTestToken(actorID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.GenealogyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.LeftChildrenCount)
	suite.Equal(9, resp.RightChildrenCount)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
