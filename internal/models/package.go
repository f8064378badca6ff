package models

import "github.com/shopspring/decimal"

// Package is the packages table row.
type Package struct {
	PackageID     string
	Name          string
	Amount        decimal.Decimal
	PointValue    decimal.Decimal
	FlushOutLimit decimal.Decimal
	HasPairing    bool
	IsFranchise   bool
	IsBCO         bool
	AuditFields
}
