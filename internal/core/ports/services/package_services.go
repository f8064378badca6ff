package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// PackageReaderSvc reads membership tiers.
type PackageReaderSvc interface {
	GetPackageByID(ctx context.Context, packageID string) (*domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

// PackageWriterSvc creates membership tiers. Packages referenced by any
// activity are immutable, so there is no update surface.
type PackageWriterSvc interface {
	CreatePackage(ctx context.Context, req dto.CreatePackageRequest, actorID string) (*domain.Package, error)
}

// PackageSvcFacade combines package-related service interfaces.
type PackageSvcFacade interface {
	PackageReaderSvc
	PackageWriterSvc
}
