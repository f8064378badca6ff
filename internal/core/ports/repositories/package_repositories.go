package repositories

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// PackageRepositoryFacade persists membership tiers.
type PackageRepositoryFacade interface {
	SavePackage(ctx context.Context, pkg domain.Package) error
	FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}
