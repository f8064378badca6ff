package models

import "github.com/shopspring/decimal"

// ActivityType mirrors domain.ActivityType at the persistence boundary.
type ActivityType string

// ActivityStatus mirrors domain.ActivityStatus at the persistence boundary.
type ActivityStatus string

// WalletType mirrors domain.WalletType at the persistence boundary.
type WalletType string

// Activity is the activities table row. RefKind/RefID together form the
// typed polymorphic back-reference to the causing entity.
type Activity struct {
	ActivityID string
	AccountID  string
	Type       ActivityType
	Amount     decimal.Decimal
	Status     ActivityStatus
	Wallet     WalletType
	RefKind    *string
	RefID      *string
	Note       string
	IsDeleted  bool
	AuditFields
}
