package dto

// LoginRequest authenticates a back-office user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateUserRequest registers a back-office user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=DEVELOPER ADMIN STAFF MEMBER"`
}

// UserResponse is the outward representation of a back-office user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
