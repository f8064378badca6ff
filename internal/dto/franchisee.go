package dto

import (
	"time"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// CreateFranchiseeRequest registers a franchise holder under a referring
// account using a franchise-package activation code.
type CreateFranchiseeRequest struct {
	ActivationCode string `json:"activationCode" binding:"required"`
	ReferrerID     string `json:"referrerID" binding:"required,uuid"`
	FirstName      string `json:"firstName" binding:"required"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName" binding:"required"`
	EmailAddress   string `json:"emailAddress" binding:"omitempty,email"`
	ContactNumber  string `json:"contactNumber"`
	City           string `json:"city"`
}

// FranchiseeResponse is the outward representation of a franchise holder.
type FranchiseeResponse struct {
	FranchiseeID  string    `json:"franchiseeID"`
	ReferrerID    string    `json:"referrerID"`
	PackageID     string    `json:"packageID"`
	FirstName     string    `json:"firstName"`
	MiddleName    string    `json:"middleName,omitempty"`
	LastName      string    `json:"lastName"`
	EmailAddress  string    `json:"emailAddress,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	City          string    `json:"city,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToFranchiseeResponse converts a domain Franchisee to its response form.
func ToFranchiseeResponse(f *domain.Franchisee) FranchiseeResponse {
	return FranchiseeResponse{
		FranchiseeID:  f.FranchiseeID,
		ReferrerID:    f.ReferrerID,
		PackageID:     f.PackageID,
		FirstName:     f.FirstName,
		MiddleName:    f.MiddleName,
		LastName:      f.LastName,
		EmailAddress:  f.EmailAddress,
		ContactNumber: f.ContactNumber,
		City:          f.City,
		CreatedAt:     f.CreatedAt,
	}
}
