package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelCode converts a domain Code to a model Code.
func ToModelCode(d domain.Code) models.Code {
	return models.Code{
		CodeID:      d.CodeID,
		Code:        d.Code,
		PackageID:   d.PackageID,
		CodeType:    models.CodeType(d.CodeType),
		Status:      models.CodeStatus(d.Status),
		OwnerID:     d.OwnerID,
		IsExpiring:  d.IsExpiring,
		IsDeleted:   d.IsDeleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCode converts a model Code to a domain Code.
func ToDomainCode(m models.Code) domain.Code {
	return domain.Code{
		CodeID:      m.CodeID,
		Code:        m.Code,
		PackageID:   m.PackageID,
		CodeType:    domain.CodeType(m.CodeType),
		Status:      domain.CodeStatus(m.Status),
		OwnerID:     m.OwnerID,
		IsExpiring:  m.IsExpiring,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCodeSlice converts a slice of model Codes.
func ToDomainCodeSlice(ms []models.Code) []domain.Code {
	ds := make([]domain.Code, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCode(m)
	}
	return ds
}
