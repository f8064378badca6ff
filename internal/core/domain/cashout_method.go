package domain

// CashoutChannel enumerates supported disbursement channels.
type CashoutChannel string

const (
	ChannelGCash          CashoutChannel = "GCash"
	ChannelCebuana        CashoutChannel = "Cebuana"
	ChannelPalawanExpress CashoutChannel = "Palawan Express"
	ChannelUnionBank      CashoutChannel = "Union Bank"
	ChannelBDO            CashoutChannel = "BDO"
	ChannelCheque         CashoutChannel = "Cheque"
	ChannelOther          CashoutChannel = "Other/s"
)

// CashoutMethod is an account's saved disbursement destination. CASHOUT
// activities reference the method used via EntityRef.
type CashoutMethod struct {
	CashoutMethodID string         `json:"cashoutMethodID"`
	AccountID       string         `json:"accountID"`
	Channel         CashoutChannel `json:"channel"`
	AccountName     string         `json:"accountName"`
	AccountNumber   string         `json:"accountNumber"`
	AuditFields
}
