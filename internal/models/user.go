package models

// User is the users table row.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	Role         string
	IsDeleted    bool
	AuditFields
}
