package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	var side *models.ParentSide
	if d.ParentSide != nil {
		s := models.ParentSide(*d.ParentSide)
		side = &s
	}
	return models.Account{
		AccountID:        d.AccountID,
		ParentID:         d.ParentID,
		ParentSide:       side,
		ReferrerID:       d.ReferrerID,
		PackageID:        d.PackageID,
		ActivationCodeID: d.ActivationCodeID,
		FirstName:        d.FirstName,
		MiddleName:       d.MiddleName,
		LastName:         d.LastName,
		Status:           models.AccountStatus(d.Status),
		IsDeleted:        d.IsDeleted,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	var side *domain.ParentSide
	if m.ParentSide != nil {
		s := domain.ParentSide(*m.ParentSide)
		side = &s
	}
	return domain.Account{
		AccountID:        m.AccountID,
		ParentID:         m.ParentID,
		ParentSide:       side,
		ReferrerID:       m.ReferrerID,
		PackageID:        m.PackageID,
		ActivationCodeID: m.ActivationCodeID,
		FirstName:        m.FirstName,
		MiddleName:       m.MiddleName,
		LastName:         m.LastName,
		Status:           domain.AccountStatus(m.Status),
		IsDeleted:        m.IsDeleted,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
