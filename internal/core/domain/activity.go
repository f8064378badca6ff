package domain

import "github.com/shopspring/decimal"

// ActivityType is the closed set of ledger entry kinds.
type ActivityType string

const (
	// C wallet
	ActivityEntry          ActivityType = "ENTRY"
	ActivityFranchiseEntry ActivityType = "FRANCHISE_ENTRY"
	ActivityPayout         ActivityType = "PAYOUT"
	ActivityCompanyTax     ActivityType = "COMPANY_TAX"
	// B wallet
	ActivityDirectReferral  ActivityType = "DIRECT_REFERRAL"
	ActivitySalesMatch      ActivityType = "SALES_MATCH"
	ActivityReferralBonus   ActivityType = "REFERRAL_BONUS"
	ActivityLeadershipBonus ActivityType = "LEADERSHIP_BONUS"
	// F wallet
	ActivityFranchiseCommission ActivityType = "FRANCHISE_COMMISSION"
	// GC wallet
	ActivityFifthPair ActivityType = "FIFTH_PAIR"
	// B, F and GC wallets
	ActivityCashout ActivityType = "CASHOUT"
	// PV left/right/total wallets
	ActivityDownlineEntry   ActivityType = "DOWNLINE_ENTRY"
	ActivityPVSalesMatch    ActivityType = "PV_SALES_MATCH"
	ActivityFlushOutPenalty ActivityType = "FLUSH_OUT_PENALTY"
)

// ActivityStatus tracks cashout progression; everything else posts as DONE.
type ActivityStatus string

const (
	StatusRequested ActivityStatus = "REQUESTED"
	StatusApproved  ActivityStatus = "APPROVED"
	StatusReleased  ActivityStatus = "RELEASED"
	StatusDenied    ActivityStatus = "DENIED"
	StatusDone      ActivityStatus = "DONE"
)

// WalletType is a named ledger partition. A wallet balance is always the sum
// of its Activities, never a stored counter.
type WalletType string

const (
	WalletC       WalletType = "C_WALLET"
	WalletB       WalletType = "B_WALLET"
	WalletF       WalletType = "F_WALLET"
	WalletGC      WalletType = "GC_WALLET"
	WalletPVLeft  WalletType = "PV_LEFT_WALLET"
	WalletPVRight WalletType = "PV_RIGHT_WALLET"
	WalletPVTotal WalletType = "PV_TOTAL_WALLET"
)

// RefKind tags the entity an Activity points back at as its cause.
type RefKind string

const (
	RefAccount       RefKind = "account"
	RefActivity      RefKind = "activity"
	RefCashoutMethod RefKind = "cashout_method"
	RefFranchisee    RefKind = "franchisee"
)

// EntityRef is the typed back-reference from an Activity to whatever caused
// it. Readers resolve Kind explicitly; unknown kinds are rejected at the
// boundary, not deep in the engine.
type EntityRef struct {
	Kind RefKind `json:"kind"`
	ID   string  `json:"id"`
}

// Activity is one append-only ledger entry scoped to an account and wallet.
// Amount, type and wallet are immutable once posted.
type Activity struct {
	ActivityID string          `json:"activityID"`
	AccountID  string          `json:"accountID"` // wallet owner
	Type       ActivityType    `json:"type"`
	Amount     decimal.Decimal `json:"amount"` // signed
	Status     ActivityStatus  `json:"status"`
	Wallet     WalletType      `json:"wallet"`
	Ref        *EntityRef      `json:"ref"` // nullable causing entity
	Note       string          `json:"note"`
	IsDeleted  bool            `json:"isDeleted"`
	AuditFields
}
