package domain

import "github.com/shopspring/decimal"

// ReferralBonus configures the bonus paid when a sponsor reaches the
// configured count of direct referrals at a given package tier.
type ReferralBonus struct {
	ReferralBonusID   string          `json:"referralBonusID"`
	PackageReferrerID string          `json:"packageReferrerID"`
	PackageReferredID string          `json:"packageReferredID"`
	PointValue        decimal.Decimal `json:"pointValue"`
	AuditFields
}

// LeadershipBonus configures the cut of a downline sales match paid to a
// sponsor-chain ancestor at the given chain level.
type LeadershipBonus struct {
	LeadershipBonusID    string          `json:"leadershipBonusID"`
	PackageID            string          `json:"packageID"`
	Level                int             `json:"level"`
	PointValuePercentage decimal.Decimal `json:"pointValuePercentage"`
	AuditFields
}
