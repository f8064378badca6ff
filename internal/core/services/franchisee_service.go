package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// franchiseeService creates franchise holders. Franchisees live outside the
// binary tree; their compensation path only touches the referrer.
type franchiseeService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	codeRepo       portsrepo.CodeRepositoryFacade
	packageRepo    portsrepo.PackageRepositoryFacade
	settingRepo    portsrepo.SettingRepositoryFacade
	franchiseeRepo portsrepo.FranchiseeRepositoryFacade
	compPlanSvc    portssvc.CompPlanSvcFacade
	clock          Clock
}

// NewFranchiseeService creates the franchisee service.
func NewFranchiseeService(repos portsrepo.RepositoryProvider, compPlanSvc portssvc.CompPlanSvcFacade, clock Clock) portssvc.FranchiseeSvcFacade {
	return &franchiseeService{
		accountRepo:    repos.AccountRepo,
		codeRepo:       repos.CodeRepo,
		packageRepo:    repos.PackageRepo,
		settingRepo:    repos.SettingRepo,
		franchiseeRepo: repos.FranchiseeRepo,
		compPlanSvc:    compPlanSvc,
		clock:          clock,
	}
}

var _ portssvc.FranchiseeSvcFacade = (*franchiseeService)(nil)

func (s *franchiseeService) GetFranchiseeByID(ctx context.Context, franchiseeID string) (*domain.Franchisee, error) {
	return s.franchiseeRepo.FindFranchiseeByID(ctx, franchiseeID)
}

func (s *franchiseeService) CreateFranchisee(ctx context.Context, req dto.CreateFranchiseeRequest, actorID string) (*domain.Franchisee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code, err := s.codeRepo.FindCodeByValue(ctx, req.ActivationCode)
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
	pkg, err := s.packageRepo.FindPackageByID(ctx, code.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsFranchise {
		return nil, fmt.Errorf("%w: %s", ErrWrongCodeType, code.CodeType)
	}
	referrer, err := s.accountRepo.FindAccountByID(ctx, req.ReferrerID)
	if err != nil {
		return nil, fmt.Errorf("resolving referrer: %w", err)
	}

	now := s.clock.Now()
	franchisee := domain.Franchisee{
		FranchiseeID:     uuid.NewString(),
		ActivationCodeID: code.CodeID,
		PackageID:        pkg.PackageID,
		ReferrerID:       referrer.AccountID,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		EmailAddress:     req.EmailAddress,
		ContactNumber:    req.ContactNumber,
		City:             req.City,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.franchiseeRepo.SaveFranchisee(ctx, franchisee); err != nil {
		return nil, err
	}

	if _, err := s.compPlanSvc.RunForFranchisee(ctx, franchisee.FranchiseeID, pkg.PackageID, code.CodeID, actorID); err != nil {
		logger.Error("franchise compensation run failed",
			slog.String("franchisee_id", franchisee.FranchiseeID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return &franchisee, nil
}
