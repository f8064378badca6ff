package mapping

import (
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// ToDomainReferralBonus converts a model ReferralBonus to a domain ReferralBonus.
func ToDomainReferralBonus(m models.ReferralBonus) domain.ReferralBonus {
	return domain.ReferralBonus{
		ReferralBonusID:   m.ReferralBonusID,
		PackageReferrerID: m.PackageReferrerID,
		PackageReferredID: m.PackageReferredID,
		PointValue:        m.PointValue,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLeadershipBonus converts a model LeadershipBonus to a domain LeadershipBonus.
func ToDomainLeadershipBonus(m models.LeadershipBonus) domain.LeadershipBonus {
	return domain.LeadershipBonus{
		LeadershipBonusID:    m.LeadershipBonusID,
		PackageID:            m.PackageID,
		Level:                m.Level,
		PointValuePercentage: m.PointValuePercentage,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
