package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

type packageService struct {
	packageRepo portsrepo.PackageRepositoryFacade
	clock       Clock
}

// NewPackageService creates the package service.
func NewPackageService(repos portsrepo.RepositoryProvider, clock Clock) portssvc.PackageSvcFacade {
	return &packageService{packageRepo: repos.PackageRepo, clock: clock}
}

var _ portssvc.PackageSvcFacade = (*packageService)(nil)

func (s *packageService) GetPackageByID(ctx context.Context, packageID string) (*domain.Package, error) {
	return s.packageRepo.FindPackageByID(ctx, packageID)
}

func (s *packageService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.packageRepo.ListPackages(ctx)
}

func (s *packageService) CreatePackage(ctx context.Context, req dto.CreatePackageRequest, actorID string) (*domain.Package, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: package amount must be positive", apperrors.ErrValidation)
	}
	if req.PointValue.IsNegative() || req.FlushOutLimit.IsNegative() {
		return nil, fmt.Errorf("%w: point value and flush-out limit cannot be negative", apperrors.ErrValidation)
	}
	if req.IsFranchise && req.HasPairing {
		return nil, fmt.Errorf("%w: franchise packages do not participate in pairing", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	pkg := domain.Package{
		PackageID:     uuid.NewString(),
		Name:          req.Name,
		Amount:        req.Amount,
		PointValue:    req.PointValue,
		FlushOutLimit: req.FlushOutLimit,
		HasPairing:    req.HasPairing,
		IsFranchise:   req.IsFranchise,
		IsBCO:         req.IsBCO,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.packageRepo.SavePackage(ctx, pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}
