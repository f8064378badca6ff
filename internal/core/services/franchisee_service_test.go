package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/core/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

type FranchiseeServiceTestSuite struct {
	suite.Suite
	accountRepo    *MockAccountRepository
	codeRepo       *MockCodeRepository
	packageRepo    *MockPackageRepository
	settingRepo    *MockSettingRepository
	franchiseeRepo *MockFranchiseeRepository
	compPlan       *MockCompPlanService
	now            time.Time
	service        portssvc.FranchiseeSvcFacade
}

func (suite *FranchiseeServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.codeRepo = new(MockCodeRepository)
	suite.packageRepo = new(MockPackageRepository)
	suite.settingRepo = new(MockSettingRepository)
	suite.franchiseeRepo = new(MockFranchiseeRepository)
	suite.compPlan = new(MockCompPlanService)
	suite.now = time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewFranchiseeService(portsrepo.RepositoryProvider{
		AccountRepo:    suite.accountRepo,
		CodeRepo:       suite.codeRepo,
		PackageRepo:    suite.packageRepo,
		SettingRepo:    suite.settingRepo,
		FranchiseeRepo: suite.franchiseeRepo,
	}, suite.compPlan, fixedClock{now: suite.now})
}

func (suite *FranchiseeServiceTestSuite) franchiseCode() *domain.Code {
	return &domain.Code{
		CodeID:    "code-fr-1",
		Code:      "FR12CD34EF",
		PackageID: "pkg-franchise",
		CodeType:  domain.CodeActivation,
		Status:    domain.CodeActive,
	}
}

func (suite *FranchiseeServiceTestSuite) franchisePackage() *domain.Package {
	return &domain.Package{
		PackageID:   "pkg-franchise",
		Name:        "Franchise",
		Amount:      decimal.RequireFromString("25000"),
		IsFranchise: true,
	}
}

func (suite *FranchiseeServiceTestSuite) createRequest() dto.CreateFranchiseeRequest {
	return dto.CreateFranchiseeRequest{
		ActivationCode: "FR12CD34EF",
		ReferrerID:     "acct-ref",
		FirstName:      "Liza",
		LastName:       "Reyes",
		City:           "Cebu",
	}
}

func (suite *FranchiseeServiceTestSuite) TestCreateFranchiseeRunsFranchisePlan() {
	ctx := context.Background()
	code := suite.franchiseCode()
	pkg := suite.franchisePackage()

	suite.codeRepo.On("FindCodeByValue", ctx, "FR12CD34EF").Return(code, nil).Once()
	suite.packageRepo.On("FindPackageByID", ctx, "pkg-franchise").Return(pkg, nil).Once()
	suite.accountRepo.On("FindAccountByID", ctx, "acct-ref").
		Return(&domain.Account{AccountID: "acct-ref", Status: domain.AccountActive}, nil).Once()
	suite.franchiseeRepo.On("SaveFranchisee", ctx, mock.MatchedBy(func(f domain.Franchisee) bool {
		return f.ActivationCodeID == "code-fr-1" &&
			f.PackageID == "pkg-franchise" &&
			f.ReferrerID == "acct-ref" &&
			f.FirstName == "Liza" &&
			f.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.compPlan.On("RunForFranchisee", ctx, mock.AnythingOfType("string"), "pkg-franchise", "code-fr-1", "admin-1").
		Return(&portssvc.CompPlanResult{Franchise: true}, nil).Once()

	franchisee, err := suite.service.CreateFranchisee(ctx, suite.createRequest(), "admin-1")

	suite.Require().NoError(err)
	suite.NotEmpty(franchisee.FranchiseeID)
	suite.Equal("acct-ref", franchisee.ReferrerID)
	suite.codeRepo.AssertExpectations(suite.T())
	suite.franchiseeRepo.AssertExpectations(suite.T())
	suite.compPlan.AssertExpectations(suite.T())
}

func (suite *FranchiseeServiceTestSuite) TestCreateFranchiseeRejectsMemberCode() {
	ctx := context.Background()
	code := suite.franchiseCode()
	code.PackageID = "pkg-basic"
	pkg := suite.franchisePackage()
	pkg.PackageID = "pkg-basic"
	pkg.IsFranchise = false

	suite.codeRepo.On("FindCodeByValue", ctx, "FR12CD34EF").Return(code, nil).Once()
	suite.packageRepo.On("FindPackageByID", ctx, "pkg-basic").Return(pkg, nil).Once()

	_, err := suite.service.CreateFranchisee(ctx, suite.createRequest(), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrWrongCodeType)
	suite.franchiseeRepo.AssertNotCalled(suite.T(), "SaveFranchisee", mock.Anything, mock.Anything)
	suite.compPlan.AssertNotCalled(suite.T(), "RunForFranchisee",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FranchiseeServiceTestSuite) TestCreateFranchiseeRejectsUsedCode() {
	ctx := context.Background()
	code := suite.franchiseCode()
	code.Status = domain.CodeUsed

	suite.codeRepo.On("FindCodeByValue", ctx, "FR12CD34EF").Return(code, nil).Once()

	_, err := suite.service.CreateFranchisee(ctx, suite.createRequest(), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCodeNotRedeemable)
	suite.packageRepo.AssertNotCalled(suite.T(), "FindPackageByID", mock.Anything, mock.Anything)
}

func (suite *FranchiseeServiceTestSuite) TestCreateFranchiseeExpiresStaleCode() {
	ctx := context.Background()
	code := suite.franchiseCode()
	code.IsExpiring = true
	code.LastUpdatedAt = suite.now.Add(-100 * time.Hour)

	suite.codeRepo.On("FindCodeByValue", ctx, "FR12CD34EF").Return(code, nil).Once()
	suite.settingRepo.On("GetSetting", ctx, domain.SettingCodeExpiration).
		Return(decimal.RequireFromString("72"), nil).Once()
	suite.codeRepo.On("UpdateCodeStatus", ctx, "code-fr-1",
		domain.CodeActive, domain.CodeExpired, "admin-1", suite.now).Return(nil).Once()

	_, err := suite.service.CreateFranchisee(ctx, suite.createRequest(), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCodeNotRedeemable)
	suite.codeRepo.AssertExpectations(suite.T())
	suite.franchiseeRepo.AssertNotCalled(suite.T(), "SaveFranchisee", mock.Anything, mock.Anything)
}

func (suite *FranchiseeServiceTestSuite) TestCreateFranchiseeUnknownReferrer() {
	ctx := context.Background()
	code := suite.franchiseCode()
	pkg := suite.franchisePackage()

	suite.codeRepo.On("FindCodeByValue", ctx, "FR12CD34EF").Return(code, nil).Once()
	suite.packageRepo.On("FindPackageByID", ctx, "pkg-franchise").Return(pkg, nil).Once()
	suite.accountRepo.On("FindAccountByID", ctx, "acct-ref").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateFranchisee(ctx, suite.createRequest(), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.franchiseeRepo.AssertNotCalled(suite.T(), "SaveFranchisee", mock.Anything, mock.Anything)
}

func TestFranchiseeService(t *testing.T) {
	suite.Run(t, new(FranchiseeServiceTestSuite))
}
