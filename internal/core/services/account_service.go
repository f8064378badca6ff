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
)

var (
	ErrSlotTaken         = errors.New("requested tree slot is already occupied")
	ErrNotExtremeSide    = errors.New("placement must extend the outer edge of the requested leg")
	ErrFranchiseCode     = errors.New("franchise codes cannot create member accounts")
	ErrWrongCodeType     = errors.New("code type not valid for this operation")
	ErrCodeOwnerMismatch = errors.New("code is owned by a different account")
)

// accountService handles tree placement and the account creation/upgrade
// flows that drive the compensation engine.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	codeRepo    portsrepo.CodeRepositoryFacade
	packageRepo portsrepo.PackageRepositoryFacade
	settingRepo portsrepo.SettingRepositoryFacade
	compPlanSvc portssvc.CompPlanSvcFacade
	clock       Clock
}

// NewAccountService creates the account service.
func NewAccountService(repos portsrepo.RepositoryProvider, compPlanSvc portssvc.CompPlanSvcFacade, clock Clock) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repos.AccountRepo,
		codeRepo:    repos.CodeRepo,
		packageRepo: repos.PackageRepo,
		settingRepo: repos.SettingRepo,
		compPlanSvc: compPlanSvc,
		clock:       clock,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetGenealogy(ctx context.Context, accountID string) (*dto.GenealogyResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	leftCount, err := s.accountRepo.CountDescendantsBySide(ctx, accountID, domain.SideLeft)
	if err != nil {
		return nil, err
	}
	rightCount, err := s.accountRepo.CountDescendantsBySide(ctx, accountID, domain.SideRight)
	if err != nil {
		return nil, err
	}
	return &dto.GenealogyResponse{
		Account:            dto.ToAccountResponse(account),
		LeftChildrenCount:  leftCount,
		RightChildrenCount: rightCount,
	}, nil
}

// CreateAccount places a new member in the tree and runs the compensation
// plan. The account lands in PENDING first; the engine activates it only
// after every posting succeeds, so a failed run leaves a retryable PENDING
// account and an ACTIVE code.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code, err := s.resolveRedeemableCode(ctx, req.ActivationCode, actorID)
	if err != nil {
		return nil, err
	}
	if code.CodeType == domain.CodeUpgrade || code.CodeType == domain.CodeReactivation {
		return nil, fmt.Errorf("%w: %s", ErrWrongCodeType, code.CodeType)
	}
	// An owned code may only create downlines for its owning sponsor.
	if code.OwnerID != nil && *code.OwnerID != req.SponsorAccountID {
		return nil, fmt.Errorf("%w: code %s", ErrCodeOwnerMismatch, code.Code)
	}
	pkg, err := s.packageRepo.FindPackageByID(ctx, code.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg.IsFranchise {
		return nil, ErrFranchiseCode
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
	if err != nil {
		return nil, err
	}
	side := domain.ParentSide(req.ParentSide)
	if err := s.verifyPlacement(ctx, parent, side); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		ParentID:         &parent.AccountID,
		ParentSide:       &side,
		PackageID:        pkg.PackageID,
		ActivationCodeID: code.CodeID,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		Status:           domain.AccountPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if req.SponsorAccountID != "" {
		sponsor, err := s.accountRepo.FindAccountByID(ctx, req.SponsorAccountID)
		if err != nil {
			return nil, fmt.Errorf("resolving sponsor: %w", err)
		}
		account.ReferrerID = &sponsor.AccountID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	if _, err := s.compPlanSvc.RunForAccount(ctx, account.AccountID, pkg.PackageID, code.CodeID, actorID); err != nil {
		logger.Error("compensation run failed for new account",
			slog.String("account_id", account.AccountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	account.Status = domain.AccountActive
	return &account, nil
}

// UpgradeAccount re-runs the plan for an existing account with an UPGRADE
// code and moves the account to the code's package tier.
func (s *accountService) UpgradeAccount(ctx context.Context, req dto.UpgradeAccountRequest, actorID string) (*domain.Account, error) {
	code, err := s.resolveRedeemableCode(ctx, req.ActivationCode, actorID)
	if err != nil {
		return nil, err
	}
	if code.CodeType != domain.CodeUpgrade {
		return nil, fmt.Errorf("%w: %s", ErrWrongCodeType, code.CodeType)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account is %s", apperrors.ErrValidation, account.Status)
	}
	if code.OwnerID != nil && *code.OwnerID != account.AccountID {
		return nil, fmt.Errorf("%w: code %s", ErrCodeOwnerMismatch, code.Code)
	}
	pkg, err := s.packageRepo.FindPackageByID(ctx, code.PackageID)
	if err != nil {
		return nil, err
	}

	if _, err := s.compPlanSvc.RunForAccount(ctx, account.AccountID, pkg.PackageID, code.CodeID, actorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.accountRepo.UpdateAccountPackage(ctx, account.AccountID, pkg.PackageID, actorID, now); err != nil {
		return nil, err
	}
	account.PackageID = pkg.PackageID
	return account, nil
}

// verifyPlacement enforces the slot and extreme-side rules: the requested
// slot must be free, and when the opposite slot is empty the parent must
// itself hang on the requested side so new nodes extend the outer edge. The
// tree root is exempt from the edge rule.
func (s *accountService) verifyPlacement(ctx context.Context, parent *domain.Account, side domain.ParentSide) error {
	if _, err := s.accountRepo.FindChildOnSide(ctx, parent.AccountID, side); err == nil {
		return ErrSlotTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	opposite := domain.SideLeft
	if side == domain.SideLeft {
		opposite = domain.SideRight
	}
	_, err := s.accountRepo.FindChildOnSide(ctx, parent.AccountID, opposite)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if parent.ParentID == nil {
		return nil
	}
	if parent.ParentSide == nil || *parent.ParentSide != side {
		return ErrNotExtremeSide
	}
	return nil
}

// resolveRedeemableCode fetches a code by value, applies lazy expiration and
// requires it to be ACTIVE.
func (s *accountService) resolveRedeemableCode(ctx context.Context, codeValue string, actorID string) (*domain.Code, error) {
	code, err := s.codeRepo.FindCodeByValue(ctx, codeValue)
	if err != nil {
		return nil, err
	}
	code, err = applyLazyExpiration(ctx, s.codeRepo, s.settingRepo, s.clock, code, actorID)
	if err != nil {
		return nil, err
	}
	if code.Status != domain.CodeActive {
		return nil, fmt.Errorf("%w: status %s", ErrCodeNotRedeemable, code.Status)
	}
	return code, nil
}
