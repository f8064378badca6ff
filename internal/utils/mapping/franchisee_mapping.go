package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelFranchisee converts a domain Franchisee to a model Franchisee.
func ToModelFranchisee(d domain.Franchisee) models.Franchisee {
	return models.Franchisee{
		FranchiseeID:     d.FranchiseeID,
		ActivationCodeID: d.ActivationCodeID,
		PackageID:        d.PackageID,
		ReferrerID:       d.ReferrerID,
		FirstName:        d.FirstName,
		MiddleName:       d.MiddleName,
		LastName:         d.LastName,
		EmailAddress:     d.EmailAddress,
		ContactNumber:    d.ContactNumber,
		City:             d.City,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFranchisee converts a model Franchisee to a domain Franchisee.
func ToDomainFranchisee(m models.Franchisee) domain.Franchisee {
	return domain.Franchisee{
		FranchiseeID:     m.FranchiseeID,
		ActivationCodeID: m.ActivationCodeID,
		PackageID:        m.PackageID,
		ReferrerID:       m.ReferrerID,
		FirstName:        m.FirstName,
		MiddleName:       m.MiddleName,
		LastName:         m.LastName,
		EmailAddress:     m.EmailAddress,
		ContactNumber:    m.ContactNumber,
		City:             m.City,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
