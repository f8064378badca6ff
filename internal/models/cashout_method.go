package models

// CashoutMethod is the cashout_methods table row.
type CashoutMethod struct {
	CashoutMethodID string
	AccountID       string
	Channel         string
	AccountName     string
	AccountNumber   string
	AuditFields
}
