package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

var (
	ErrCashoutClosed         = errors.New("wallet is not open for cashout today")
	ErrCashoutBelowMinimum   = errors.New("amount is below the minimum cashout amount")
	ErrInsufficientBalance   = errors.New("wallet balance is insufficient")
	ErrCashoutAlreadyToday   = errors.New("wallet already has a cashout today")
	ErrCashoutPending        = errors.New("wallet has a pending cashout")
	ErrNotACashout           = errors.New("activity is not a cashout")
	ErrInvalidStatusChange   = errors.New("invalid cashout status transition")
	ErrMethodAccountMismatch = errors.New("cashout method belongs to a different account")
)

// cashoutService runs the cashout lifecycle. The CASHOUT activity debits
// its source wallet from the moment it is REQUESTED (the balance query
// counts open cashouts as negative); releasing posts the PAYOUT and
// COMPANY_TAX pair, denying restores the balance.
type cashoutService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	activityRepo portsrepo.ActivityRepositoryWithTx
	settingRepo  portsrepo.SettingRepositoryFacade
	methodRepo   portsrepo.CashoutMethodRepositoryFacade
	clock        Clock
}

// NewCashoutService creates the cashout service.
func NewCashoutService(repos portsrepo.RepositoryProvider, clock Clock) portssvc.CashoutSvcFacade {
	return &cashoutService{
		accountRepo:  repos.AccountRepo,
		activityRepo: repos.ActivityRepo,
		settingRepo:  repos.SettingRepo,
		methodRepo:   repos.CashoutMethodRepo,
		clock:        clock,
	}
}

var _ portssvc.CashoutSvcFacade = (*cashoutService)(nil)

func (s *cashoutService) RequestCashout(ctx context.Context, req dto.CreateCashoutRequest, actorID string) (*dto.CashoutResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	wallet := domain.WalletType(req.Wallet)
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: cashout amount must be positive", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	if err := s.checkSchedule(ctx, wallet, now); err != nil {
		return nil, err
	}
	minimum, err := s.settingRepo.GetSetting(ctx, domain.SettingMinimumCashoutAmount)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThan(minimum) {
		return nil, fmt.Errorf("%w: minimum is %s", ErrCashoutBelowMinimum, minimum)
	}

	dayStart := startOfDay(now)
	hasToday, err := s.activityRepo.HasCashoutBetween(ctx, account.AccountID, wallet, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if hasToday {
		return nil, ErrCashoutAlreadyToday
	}
	hasPending, err := s.activityRepo.HasPendingCashout(ctx, account.AccountID, wallet)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, ErrCashoutPending
	}

	balance, err := s.activityRepo.SumWalletSigned(ctx, account.AccountID, wallet)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientBalance, balance, req.Amount)
	}

	method, err := s.resolveMethod(ctx, account.AccountID, req.Method, actorID, now)
	if err != nil {
		return nil, err
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		AccountID:  account.AccountID,
		Type:       domain.ActivityCashout,
		Amount:     req.Amount,
		Status:     domain.StatusRequested,
		Wallet:     wallet,
		Ref:        &domain.EntityRef{Kind: domain.RefCashoutMethod, ID: method.CashoutMethodID},
		Note:       req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.activityRepo.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	logger.Info("cashout requested",
		slog.String("account_id", account.AccountID),
		slog.String("wallet", string(wallet)),
		slog.String("amount", req.Amount.String()))

	return s.toResponse(ctx, &activity)
}

func (s *cashoutService) ApproveCashout(ctx context.Context, activityID string, actorID string) (*dto.CashoutResponse, error) {
	return s.transition(ctx, activityID, domain.StatusApproved, "Cashout Approved", actorID)
}

// ReleaseCashout finalizes an approved cashout: the status flip and the
// PAYOUT and COMPANY_TAX postings happen in one transaction.
func (s *cashoutService) ReleaseCashout(ctx context.Context, activityID string, actorID string) (*dto.CashoutResponse, error) {
	cashout, err := s.loadCashout(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if cashout.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: %s -> RELEASED", ErrInvalidStatusChange, cashout.Status)
	}

	feePct, err := s.settingRepo.GetSetting(ctx, domain.SettingCompanyCashoutFeePercentage)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	payout := cashout.Amount.Mul(hundred.Sub(feePct)).Div(hundred)
	fee := cashout.Amount.Mul(feePct).Div(hundred)
	cashoutRef := &domain.EntityRef{Kind: domain.RefActivity, ID: cashout.ActivityID}

	err = s.activityRepo.WithTx(ctx, func(txRepo portsrepo.ActivityRepositoryFacade) error {
		if err := txRepo.UpdateActivityStatus(ctx, cashout.ActivityID, domain.StatusReleased, "Cashout Released", actorID, now); err != nil {
			return err
		}
		audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
		if err := txRepo.CreateActivity(ctx, domain.Activity{
			ActivityID:  uuid.NewString(),
			AccountID:   cashout.AccountID,
			Type:        domain.ActivityPayout,
			Amount:      payout,
			Status:      domain.StatusDone,
			Wallet:      domain.WalletC,
			Ref:         cashoutRef,
			AuditFields: audit,
		}); err != nil {
			return err
		}
		return txRepo.CreateActivity(ctx, domain.Activity{
			ActivityID:  uuid.NewString(),
			AccountID:   cashout.AccountID,
			Type:        domain.ActivityCompanyTax,
			Amount:      fee,
			Status:      domain.StatusDone,
			Wallet:      domain.WalletC,
			Ref:         cashoutRef,
			AuditFields: audit,
		})
	})
	if err != nil {
		return nil, err
	}

	cashout.Status = domain.StatusReleased
	return &dto.CashoutResponse{
		ActivityID:   cashout.ActivityID,
		AccountID:    cashout.AccountID,
		Wallet:       string(cashout.Wallet),
		Amount:       cashout.Amount,
		PayoutAmount: payout,
		FeeAmount:    fee,
		Status:       string(cashout.Status),
	}, nil
}

func (s *cashoutService) DenyCashout(ctx context.Context, activityID string, note string, actorID string) (*dto.CashoutResponse, error) {
	if note == "" {
		note = "Cashout Denied"
	}
	return s.transition(ctx, activityID, domain.StatusDenied, note, actorID)
}

func (s *cashoutService) transition(ctx context.Context, activityID string, target domain.ActivityStatus, note string, actorID string) (*dto.CashoutResponse, error) {
	cashout, err := s.loadCashout(ctx, activityID)
	if err != nil {
		return nil, err
	}
	valid := false
	switch target {
	case domain.StatusApproved:
		valid = cashout.Status == domain.StatusRequested
	case domain.StatusDenied:
		valid = cashout.Status == domain.StatusRequested || cashout.Status == domain.StatusApproved
	}
	if !valid {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, cashout.Status, target)
	}

	now := s.clock.Now()
	if err := s.activityRepo.UpdateActivityStatus(ctx, cashout.ActivityID, target, note, actorID, now); err != nil {
		return nil, err
	}
	cashout.Status = target
	return s.toResponse(ctx, cashout)
}

func (s *cashoutService) loadCashout(ctx context.Context, activityID string) (*domain.Activity, error) {
	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Type != domain.ActivityCashout {
		return nil, fmt.Errorf("%w: %s", ErrNotACashout, activity.Type)
	}
	return activity, nil
}

// checkSchedule enforces the per-wallet cashout weekday with its override
// switch. Day numbering follows ISO weekdays, Monday=1 through Sunday=7.
func (s *cashoutService) checkSchedule(ctx context.Context, wallet domain.WalletType, now time.Time) error {
	day, err := s.settingRepo.GetSetting(ctx, domain.SettingName(string(wallet)+domain.SettingSuffixCashoutDay))
	if err != nil {
		return err
	}
	weekday := int64(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	if day.IntPart() == weekday {
		return nil
	}
	override, err := s.settingRepo.GetSetting(ctx, domain.SettingName(string(wallet)+domain.SettingSuffixCashoutOverride))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrCashoutClosed
		}
		return err
	}
	if !override.IsZero() {
		return nil
	}
	return ErrCashoutClosed
}

func (s *cashoutService) resolveMethod(ctx context.Context, accountID string, input dto.CashoutMethodInput, actorID string, now time.Time) (*domain.CashoutMethod, error) {
	if input.MethodID != "" {
		method, err := s.methodRepo.FindCashoutMethodByID(ctx, input.MethodID)
		if err != nil {
			return nil, err
		}
		if method.AccountID != accountID {
			return nil, ErrMethodAccountMismatch
		}
		return method, nil
	}
	if input.Channel == "" {
		return nil, fmt.Errorf("%w: cashout method is required", apperrors.ErrValidation)
	}
	method := domain.CashoutMethod{
		CashoutMethodID: uuid.NewString(),
		AccountID:       accountID,
		Channel:         domain.CashoutChannel(input.Channel),
		AccountName:     input.AccountName,
		AccountNumber:   input.AccountNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.methodRepo.SaveCashoutMethod(ctx, method); err != nil {
		return nil, err
	}
	return &method, nil
}

func (s *cashoutService) toResponse(ctx context.Context, cashout *domain.Activity) (*dto.CashoutResponse, error) {
	feePct, err := s.settingRepo.GetSetting(ctx, domain.SettingCompanyCashoutFeePercentage)
	if err != nil {
		return nil, err
	}
	payout := cashout.Amount.Mul(hundred.Sub(feePct)).Div(hundred)
	fee := cashout.Amount.Mul(feePct).Div(hundred)
	return &dto.CashoutResponse{
		ActivityID:   cashout.ActivityID,
		AccountID:    cashout.AccountID,
		Wallet:       string(cashout.Wallet),
		Amount:       cashout.Amount,
		PayoutAmount: payout,
		FeeAmount:    fee,
		Status:       string(cashout.Status),
	}, nil
}
