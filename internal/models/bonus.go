package models

import "github.com/shopspring/decimal"

// ReferralBonus is the referral_bonuses table row.
type ReferralBonus struct {
	ReferralBonusID   string
	PackageReferrerID string
	PackageReferredID string
	PointValue        decimal.Decimal
	AuditFields
}

// LeadershipBonus is the leadership_bonuses table row.
type LeadershipBonus struct {
	LeadershipBonusID    string
	PackageID            string
	Level                int
	PointValuePercentage decimal.Decimal
	AuditFields
}
