package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToModelActivity converts a domain Activity to a model Activity.
func ToModelActivity(d domain.Activity) models.Activity {
	m := models.Activity{
		ActivityID:  d.ActivityID,
		AccountID:   d.AccountID,
		Type:        models.ActivityType(d.Type),
		Amount:      d.Amount,
		Status:      models.ActivityStatus(d.Status),
		Wallet:      models.WalletType(d.Wallet),
		Note:        d.Note,
		IsDeleted:   d.IsDeleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Ref != nil {
		kind := string(d.Ref.Kind)
		id := d.Ref.ID
		m.RefKind = &kind
		m.RefID = &id
	}
	return m
}

// ToDomainActivity converts a model Activity to a domain Activity.
func ToDomainActivity(m models.Activity) domain.Activity {
	d := domain.Activity{
		ActivityID:  m.ActivityID,
		AccountID:   m.AccountID,
		Type:        domain.ActivityType(m.Type),
		Amount:      m.Amount,
		Status:      domain.ActivityStatus(m.Status),
		Wallet:      domain.WalletType(m.Wallet),
		Note:        m.Note,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.RefKind != nil && m.RefID != nil {
		d.Ref = &domain.EntityRef{Kind: domain.RefKind(*m.RefKind), ID: *m.RefID}
	}
	return d
}

// ToDomainActivitySlice converts a slice of model Activities.
func ToDomainActivitySlice(ms []models.Activity) []domain.Activity {
	ds := make([]domain.Activity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}
