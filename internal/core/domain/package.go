package domain

import "github.com/shopspring/decimal"

// Package is a membership tier. Amounts are copied into Activities at posting
// time, so a Package is immutable once any Activity references it.
type Package struct {
	PackageID     string          `json:"packageID"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`        // entry price
	PointValue    decimal.Decimal `json:"pointValue"`    // PV credited per downline entry
	FlushOutLimit decimal.Decimal `json:"flushOutLimit"` // daily PV sales-match cap
	HasPairing    bool            `json:"hasPairing"`
	IsFranchise   bool            `json:"isFranchise"`
	IsBCO         bool            `json:"isBCO"`
	AuditFields
}
