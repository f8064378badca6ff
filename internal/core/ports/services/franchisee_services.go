package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// FranchiseeReaderSvc reads franchise holders.
type FranchiseeReaderSvc interface {
	GetFranchiseeByID(ctx context.Context, franchiseeID string) (*domain.Franchisee, error)
}

// FranchiseeWriterSvc creates franchise holders from franchise-package
// codes and runs the franchise compensation path.
type FranchiseeWriterSvc interface {
	CreateFranchisee(ctx context.Context, req dto.CreateFranchiseeRequest, actorID string) (*domain.Franchisee, error)
}

// FranchiseeSvcFacade combines franchisee-related service interfaces.
type FranchiseeSvcFacade interface {
	FranchiseeReaderSvc
	FranchiseeWriterSvc
}
