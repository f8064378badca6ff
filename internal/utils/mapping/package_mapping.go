package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelPackage converts a domain Package to a model Package.
func ToModelPackage(d domain.Package) models.Package {
	return models.Package{
		PackageID:     d.PackageID,
		Name:          d.Name,
		Amount:        d.Amount,
		PointValue:    d.PointValue,
		FlushOutLimit: d.FlushOutLimit,
		HasPairing:    d.HasPairing,
		IsFranchise:   d.IsFranchise,
		IsBCO:         d.IsBCO,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPackage converts a model Package to a domain Package.
func ToDomainPackage(m models.Package) domain.Package {
	return domain.Package{
		PackageID:     m.PackageID,
		Name:          m.Name,
		Amount:        m.Amount,
		PointValue:    m.PointValue,
		FlushOutLimit: m.FlushOutLimit,
		HasPairing:    m.HasPairing,
		IsFranchise:   m.IsFranchise,
		IsBCO:         m.IsBCO,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
