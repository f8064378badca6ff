package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/core/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

type CashoutServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	settingRepo *MockSettingRepository
	methodRepo  *MockCashoutMethodRepository
	ledger      *fakeLedger
	now         time.Time // a Wednesday
	service     portssvc.CashoutSvcFacade
}

func (suite *CashoutServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.settingRepo = new(MockSettingRepository)
	suite.methodRepo = new(MockCashoutMethodRepository)
	suite.ledger = new(fakeLedger)
	suite.now = time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewCashoutService(portsrepo.RepositoryProvider{
		AccountRepo:       suite.accountRepo,
		ActivityRepo:      suite.ledger,
		SettingRepo:       suite.settingRepo,
		CashoutMethodRepo: suite.methodRepo,
	}, fixedClock{now: suite.now})
}

func (suite *CashoutServiceTestSuite) stubAccount(accountID string) {
	account := &domain.Account{AccountID: accountID, PackageID: "pkg-basic", Status: domain.AccountActive}
	suite.accountRepo.On("FindAccountByID", mock.Anything, accountID).Return(account, nil)
}

func (suite *CashoutServiceTestSuite) stubScheduleOpen(wallet domain.WalletType) {
	dayKey := domain.SettingName(string(wallet) + domain.SettingSuffixCashoutDay)
	suite.settingRepo.On("GetSetting", mock.Anything, dayKey).Return(decimal.NewFromInt(3), nil)
}

func (suite *CashoutServiceTestSuite) stubFee(pct string) {
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingCompanyCashoutFeePercentage).
		Return(decimal.RequireFromString(pct), nil)
}

func (suite *CashoutServiceTestSuite) requestFor(amount string) dto.CreateCashoutRequest {
	return dto.CreateCashoutRequest{
		AccountID: "acc-1",
		Wallet:    string(domain.WalletB),
		Amount:    decimal.RequireFromString(amount),
		Method: dto.CashoutMethodInput{
			Channel:       string(domain.ChannelGCash),
			AccountName:   "Maria Santos",
			AccountNumber: "09170000000",
		},
	}
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutOpensRequest() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.stubFee("10")
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "2000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.methodRepo.On("SaveCashoutMethod", ctx, mock.MatchedBy(func(method domain.CashoutMethod) bool {
		return method.AccountID == "acc-1" && method.Channel == domain.ChannelGCash
	})).Return(nil).Once()

	resp, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().NoError(err)
	suite.Equal("REQUESTED", resp.Status)
	suite.requireAmount("900", resp.PayoutAmount)
	suite.requireAmount("100", resp.FeeAmount)

	// The open request already debits the wallet.
	balance, err := suite.ledger.SumWalletSigned(ctx, "acc-1", domain.WalletB)
	suite.Require().NoError(err)
	suite.requireAmount("1000", balance)
	suite.methodRepo.AssertExpectations(suite.T())
}

func (suite *CashoutServiceTestSuite) requireAmount(want string, got decimal.Decimal) {
	suite.Require().True(got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutClosedDay() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	dayKey := domain.SettingName(string(domain.WalletB) + domain.SettingSuffixCashoutDay)
	overrideKey := domain.SettingName(string(domain.WalletB) + domain.SettingSuffixCashoutOverride)
	suite.settingRepo.On("GetSetting", mock.Anything, dayKey).Return(decimal.NewFromInt(1), nil).Once()
	suite.settingRepo.On("GetSetting", mock.Anything, overrideKey).Return(decimal.Zero, nil).Once()

	_, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCashoutClosed)
	suite.Empty(suite.ledger.activities)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutOverrideOpensClosedDay() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	dayKey := domain.SettingName(string(domain.WalletB) + domain.SettingSuffixCashoutDay)
	overrideKey := domain.SettingName(string(domain.WalletB) + domain.SettingSuffixCashoutOverride)
	suite.settingRepo.On("GetSetting", mock.Anything, dayKey).Return(decimal.NewFromInt(1), nil).Once()
	suite.settingRepo.On("GetSetting", mock.Anything, overrideKey).Return(decimal.NewFromInt(1), nil).Once()
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.stubFee("10")
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "2000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.methodRepo.On("SaveCashoutMethod", ctx, mock.AnythingOfType("domain.CashoutMethod")).Return(nil).Once()

	resp, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().NoError(err)
	suite.Equal("REQUESTED", resp.Status)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutBelowMinimum() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()

	_, err := suite.service.RequestCashout(ctx, suite.requestFor("499"), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCashoutBelowMinimum)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutInsufficientBalance() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "800", domain.WalletB, suite.now.AddDate(0, 0, -3))

	_, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientBalance)
	suite.methodRepo.AssertNotCalled(suite.T(), "SaveCashoutMethod", mock.Anything, mock.Anything)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutOnePerDay() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "5000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.ledger.seedCashout("cash-0", "acc-1", "600", domain.WalletB, domain.StatusReleased, suite.now.Add(-2*time.Hour))

	_, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCashoutAlreadyToday)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutBlockedByPending() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "5000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.ledger.seedCashout("cash-0", "acc-1", "600", domain.WalletB, domain.StatusRequested, suite.now.AddDate(0, 0, -7))

	_, err := suite.service.RequestCashout(ctx, suite.requestFor("1000"), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCashoutPending)
}

func (suite *CashoutServiceTestSuite) TestRequestCashoutRejectsForeignMethod() {
	ctx := context.Background()
	suite.stubAccount("acc-1")
	suite.stubScheduleOpen(domain.WalletB)
	suite.settingRepo.On("GetSetting", mock.Anything, domain.SettingMinimumCashoutAmount).Return(decimal.NewFromInt(500), nil).Once()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "5000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.methodRepo.On("FindCashoutMethodByID", ctx, "method-9").
		Return(&domain.CashoutMethod{CashoutMethodID: "method-9", AccountID: "acc-other"}, nil).Once()

	req := suite.requestFor("1000")
	req.Method = dto.CashoutMethodInput{MethodID: "method-9"}
	_, err := suite.service.RequestCashout(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMethodAccountMismatch)
}

func (suite *CashoutServiceTestSuite) TestApproveCashout() {
	ctx := context.Background()
	suite.ledger.seedCashout("cash-1", "acc-1", "1000", domain.WalletB, domain.StatusRequested, suite.now.Add(-time.Hour))
	suite.stubFee("10")

	resp, err := suite.service.ApproveCashout(ctx, "cash-1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("APPROVED", resp.Status)

	stored, err := suite.ledger.FindActivityByID(ctx, "cash-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, stored.Status)
	suite.Equal("admin-1", stored.LastUpdatedBy)
}

func (suite *CashoutServiceTestSuite) TestReleasePostsPayoutAndTax() {
	ctx := context.Background()
	suite.ledger.seedCashout("cash-1", "acc-1", "1000", domain.WalletB, domain.StatusApproved, suite.now.Add(-time.Hour))
	suite.stubFee("10")

	resp, err := suite.service.ReleaseCashout(ctx, "cash-1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("RELEASED", resp.Status)
	suite.requireAmount("900", resp.PayoutAmount)
	suite.requireAmount("100", resp.FeeAmount)

	payout, err := suite.ledger.SumActivities(ctx, "acc-1", domain.WalletC, domain.ActivityPayout)
	suite.Require().NoError(err)
	suite.requireAmount("900", payout)
	tax, err := suite.ledger.SumActivities(ctx, "acc-1", domain.WalletC, domain.ActivityCompanyTax)
	suite.Require().NoError(err)
	suite.requireAmount("100", tax)

	stored, err := suite.ledger.FindActivityByID(ctx, "cash-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusReleased, stored.Status)
}

func (suite *CashoutServiceTestSuite) TestReleaseRequiresApproval() {
	ctx := context.Background()
	suite.ledger.seedCashout("cash-1", "acc-1", "1000", domain.WalletB, domain.StatusRequested, suite.now.Add(-time.Hour))

	_, err := suite.service.ReleaseCashout(ctx, "cash-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidStatusChange)
	suite.Zero(suite.ledger.countByType("acc-1", domain.ActivityPayout))
}

func (suite *CashoutServiceTestSuite) TestDenyRestoresBalance() {
	ctx := context.Background()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "2000", domain.WalletB, suite.now.AddDate(0, 0, -3))
	suite.ledger.seedCashout("cash-1", "acc-1", "1000", domain.WalletB, domain.StatusRequested, suite.now.Add(-time.Hour))
	suite.stubFee("10")

	resp, err := suite.service.DenyCashout(ctx, "cash-1", "", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("DENIED", resp.Status)

	balance, err := suite.ledger.SumWalletSigned(ctx, "acc-1", domain.WalletB)
	suite.Require().NoError(err)
	suite.requireAmount("2000", balance)

	stored, err := suite.ledger.FindActivityByID(ctx, "cash-1")
	suite.Require().NoError(err)
	suite.Equal("Cashout Denied", stored.Note)
}

func (suite *CashoutServiceTestSuite) TestApproveRejectsNonCashout() {
	ctx := context.Background()
	suite.ledger.seed("acc-1", domain.ActivitySalesMatch, "500", domain.WalletB, suite.now.Add(-time.Hour))
	activityID := suite.ledger.activities[0].ActivityID

	_, err := suite.service.ApproveCashout(ctx, activityID, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotACashout)
}

func TestCashoutService(t *testing.T) {
	suite.Run(t, new(CashoutServiceTestSuite))
}
