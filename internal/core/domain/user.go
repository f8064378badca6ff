package domain

// UserRole is the back-office permission tier.
type UserRole string

const (
	RoleDeveloper UserRole = "DEVELOPER"
	RoleAdmin     UserRole = "ADMIN"
	RoleStaff     UserRole = "STAFF"
	RoleMember    UserRole = "MEMBER"
)

// User is a back-office login identity. Member accounts link to a User for
// self-service access; admin operations require ADMIN or above.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsDeleted    bool     `json:"isDeleted"`
	AuditFields
}
