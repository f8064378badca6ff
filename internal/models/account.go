package models

// AccountStatus mirrors domain.AccountStatus at the persistence boundary.
type AccountStatus string

// ParentSide mirrors domain.ParentSide at the persistence boundary.
type ParentSide string

// Account is the accounts table row.
type Account struct {
	AccountID        string
	ParentID         *string
	ParentSide       *ParentSide
	ReferrerID       *string
	PackageID        string
	ActivationCodeID string
	FirstName        string
	MiddleName       string
	LastName         string
	Status           AccountStatus
	IsDeleted        bool
	AuditFields
}
