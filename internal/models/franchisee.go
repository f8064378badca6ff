package models

// Franchisee is the franchisees table row.
type Franchisee struct {
	FranchiseeID     string
	ActivationCodeID string
	PackageID        string
	ReferrerID       string
	FirstName        string
	MiddleName       string
	LastName         string
	EmailAddress     string
	ContactNumber    string
	City             string
	AuditFields
}
