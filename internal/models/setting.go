package models

import "github.com/shopspring/decimal"

// Setting is the settings table row.
type Setting struct {
	SettingID string
	Name      string
	Value     decimal.Decimal
	AuditFields
}
