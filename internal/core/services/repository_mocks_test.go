package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
)

// MockAccountRepository is a mock implementation of AccountRepositoryFacade.
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, accountID, status, updatedBy, at)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountPackage(ctx context.Context, accountID string, packageID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, accountID, packageID, updatedBy, at)
	return args.Error(0)
}

func (m *MockAccountRepository) FindChildOnSide(ctx context.Context, parentID string, side domain.ParentSide) (*domain.Account, error) {
	args := m.Called(ctx, parentID, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAllParentsWithSide(ctx context.Context, accountID string) ([]domain.ParentLink, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParentLink), args.Error(1)
}

func (m *MockAccountRepository) GetTwoLevelReferrers(ctx context.Context, accountID string) ([]domain.ReferrerLink, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferrerLink), args.Error(1)
}

func (m *MockAccountRepository) CountDirectReferralsByPackage(ctx context.Context, accountID, packageID string) (int, error) {
	args := m.Called(ctx, accountID, packageID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountDescendantsBySide(ctx context.Context, accountID string, side domain.ParentSide) (int, error) {
	args := m.Called(ctx, accountID, side)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByActivationCodeID(ctx context.Context, codeID string) (*domain.Account, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockCodeRepository is a mock implementation of CodeRepositoryFacade.
type MockCodeRepository struct {
	mock.Mock
}

var _ portsrepo.CodeRepositoryFacade = (*MockCodeRepository)(nil)

func (m *MockCodeRepository) SaveCodes(ctx context.Context, codes []domain.Code) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

func (m *MockCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Code), args.Error(1)
}

func (m *MockCodeRepository) FindCodeByValue(ctx context.Context, code string) (*domain.Code, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Code), args.Error(1)
}

func (m *MockCodeRepository) ListCodesByOwner(ctx context.Context, ownerID string) ([]domain.Code, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Code), args.Error(1)
}

func (m *MockCodeRepository) MarkCodeUsed(ctx context.Context, codeID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, codeID, updatedBy, at)
	return args.Error(0)
}

func (m *MockCodeRepository) UpdateCodeStatus(ctx context.Context, codeID string, from, to domain.CodeStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, codeID, from, to, updatedBy, at)
	return args.Error(0)
}

// MockPackageRepository is a mock implementation of PackageRepositoryFacade.
type MockPackageRepository struct {
	mock.Mock
}

var _ portsrepo.PackageRepositoryFacade = (*MockPackageRepository)(nil)

func (m *MockPackageRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

// MockSettingRepository is a mock implementation of SettingRepositoryFacade.
type MockSettingRepository struct {
	mock.Mock
}

var _ portsrepo.SettingRepositoryFacade = (*MockSettingRepository)(nil)

func (m *MockSettingRepository) GetSetting(ctx context.Context, name domain.SettingName) (decimal.Decimal, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingRepository) UpdateSetting(ctx context.Context, name domain.SettingName, value decimal.Decimal, updatedBy string, at time.Time) error {
	args := m.Called(ctx, name, value, updatedBy, at)
	return args.Error(0)
}

// MockBonusRepository is a mock implementation of BonusRepositoryFacade.
type MockBonusRepository struct {
	mock.Mock
}

var _ portsrepo.BonusRepositoryFacade = (*MockBonusRepository)(nil)

func (m *MockBonusRepository) FindReferralBonus(ctx context.Context, packageReferrerID, packageReferredID string) (*domain.ReferralBonus, error) {
	args := m.Called(ctx, packageReferrerID, packageReferredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralBonus), args.Error(1)
}

func (m *MockBonusRepository) FindLeadershipBonus(ctx context.Context, packageID string, level int) (*domain.LeadershipBonus, error) {
	args := m.Called(ctx, packageID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeadershipBonus), args.Error(1)
}

// MockFranchiseeRepository is a mock implementation of FranchiseeRepositoryFacade.
type MockFranchiseeRepository struct {
	mock.Mock
}

var _ portsrepo.FranchiseeRepositoryFacade = (*MockFranchiseeRepository)(nil)

func (m *MockFranchiseeRepository) SaveFranchisee(ctx context.Context, franchisee domain.Franchisee) error {
	args := m.Called(ctx, franchisee)
	return args.Error(0)
}

func (m *MockFranchiseeRepository) FindFranchiseeByID(ctx context.Context, franchiseeID string) (*domain.Franchisee, error) {
	args := m.Called(ctx, franchiseeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Franchisee), args.Error(1)
}

func (m *MockFranchiseeRepository) FindFranchiseeByActivationCodeID(ctx context.Context, codeID string) (*domain.Franchisee, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Franchisee), args.Error(1)
}

// MockCashoutMethodRepository is a mock implementation of CashoutMethodRepositoryFacade.
type MockCashoutMethodRepository struct {
	mock.Mock
}

var _ portsrepo.CashoutMethodRepositoryFacade = (*MockCashoutMethodRepository)(nil)

func (m *MockCashoutMethodRepository) SaveCashoutMethod(ctx context.Context, method domain.CashoutMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockCashoutMethodRepository) FindCashoutMethodByID(ctx context.Context, cashoutMethodID string) (*domain.CashoutMethod, error) {
	args := m.Called(ctx, cashoutMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashoutMethod), args.Error(1)
}

func (m *MockCashoutMethodRepository) ListCashoutMethodsByAccount(ctx context.Context, accountID string) ([]domain.CashoutMethod, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashoutMethod), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepositoryFacade.
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCompPlanService is a mock implementation of CompPlanSvcFacade, for
// testing the services that trigger compensation runs.
type MockCompPlanService struct {
	mock.Mock
}

var _ portssvc.CompPlanSvcFacade = (*MockCompPlanService)(nil)

func (m *MockCompPlanService) RunForAccount(ctx context.Context, accountID string, packageID string, codeID string, actorID string) (*portssvc.CompPlanResult, error) {
	args := m.Called(ctx, accountID, packageID, codeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CompPlanResult), args.Error(1)
}

func (m *MockCompPlanService) RunForFranchisee(ctx context.Context, franchiseeID string, packageID string, codeID string, actorID string) (*portssvc.CompPlanResult, error) {
	args := m.Called(ctx, franchiseeID, packageID, codeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CompPlanResult), args.Error(1)
}
