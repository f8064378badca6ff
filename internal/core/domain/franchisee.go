package domain

// Franchisee is a franchise holder created from a franchise-package code.
// Franchisees sit outside the binary tree; only their referrer participates
// in the compensation run (FRANCHISE_ENTRY and FRANCHISE_COMMISSION).
type Franchisee struct {
	FranchiseeID     string `json:"franchiseeID"`
	ActivationCodeID string `json:"activationCodeID"`
	PackageID        string `json:"packageID"`
	ReferrerID       string `json:"referrerID"`
	FirstName        string `json:"firstName"`
	MiddleName       string `json:"middleName"`
	LastName         string `json:"lastName"`
	EmailAddress     string `json:"emailAddress"`
	ContactNumber    string `json:"contactNumber"`
	City             string `json:"city"`
	AuditFields
}
