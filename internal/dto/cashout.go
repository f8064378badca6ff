package dto

import "github.com/shopspring/decimal"

// CashoutMethodInput selects an existing disbursement destination or
// describes a new one inline. Exactly one of MethodID or Channel must be
// provided.
type CashoutMethodInput struct {
	MethodID      string `json:"methodID" binding:"omitempty,uuid"`
	Channel       string `json:"channel" binding:"omitempty,oneof='GCash' 'Cebuana' 'Palawan Express' 'Union Bank' 'BDO' 'Cheque' 'Other/s'"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// CreateCashoutRequest opens a cashout against a wallet.
type CreateCashoutRequest struct {
	AccountID string             `json:"accountID" binding:"required,uuid"`
	Wallet    string             `json:"wallet" binding:"required,oneof=B_WALLET F_WALLET GC_WALLET"`
	Amount    decimal.Decimal    `json:"amount" binding:"required,dgt0"`
	Note      string             `json:"note"`
	Method    CashoutMethodInput `json:"method" binding:"required"`
}

// UpdateCashoutStatusRequest moves a cashout through its lifecycle.
type UpdateCashoutStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=RELEASED DENIED"`
}

// CashoutResponse summarizes a created or updated cashout with its derived
// payout and fee amounts.
type CashoutResponse struct {
	ActivityID   string          `json:"activityID"`
	AccountID    string          `json:"accountID"`
	Wallet       string          `json:"wallet"`
	Amount       decimal.Decimal `json:"amount"`
	PayoutAmount decimal.Decimal `json:"payoutAmount"`
	FeeAmount    decimal.Decimal `json:"feeAmount"`
	Status       string          `json:"status"`
}
