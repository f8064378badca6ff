package dto

import (
	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// CreatePackageRequest defines an enrollment package.
type CreatePackageRequest struct {
	Name          string          `json:"name" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PointValue    decimal.Decimal `json:"pointValue"`
	FlushOutLimit decimal.Decimal `json:"flushOutLimit"`
	HasPairing    bool            `json:"hasPairing"`
	IsFranchise   bool            `json:"isFranchise"`
	IsBCO         bool            `json:"isBCO"`
}

// PackageResponse is the outward representation of a package.
type PackageResponse struct {
	PackageID     string          `json:"packageID"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	PointValue    decimal.Decimal `json:"pointValue"`
	FlushOutLimit decimal.Decimal `json:"flushOutLimit"`
	HasPairing    bool            `json:"hasPairing"`
	IsFranchise   bool            `json:"isFranchise"`
	IsBCO         bool            `json:"isBCO"`
}

// ToPackageResponse converts a domain Package to its response form.
func ToPackageResponse(p *domain.Package) PackageResponse {
	return PackageResponse{
		PackageID:     p.PackageID,
		Name:          p.Name,
		Amount:        p.Amount,
		PointValue:    p.PointValue,
		FlushOutLimit: p.FlushOutLimit,
		HasPairing:    p.HasPairing,
		IsFranchise:   p.IsFranchise,
		IsBCO:         p.IsBCO,
	}
}

// ToPackageResponses converts a slice of packages.
func ToPackageResponses(packages []domain.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(packages))
	for i := range packages {
		out = append(out, ToPackageResponse(&packages[i]))
	}
	return out
}
