package models

// CodeType mirrors domain.CodeType at the persistence boundary.
type CodeType string

// CodeStatus mirrors domain.CodeStatus at the persistence boundary.
type CodeStatus string

// Code is the codes table row.
type Code struct {
	CodeID     string
	Code       string
	PackageID  string
	CodeType   CodeType
	Status     CodeStatus
	OwnerID    *string
	IsExpiring bool
	IsDeleted  bool
	AuditFields
}
