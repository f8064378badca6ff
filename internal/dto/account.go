package dto

import (
	"time"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// CreateAccountRequest is the payload for the public account-creation flow.
// The activation code determines the package; the parent/side pair places the
// account in the binary tree and the sponsor sets the referrer edge.
type CreateAccountRequest struct {
	ActivationCode   string `json:"activationCode" binding:"required"`
	ParentAccountID  string `json:"parentAccountID" binding:"required,uuid"`
	ParentSide       string `json:"parentSide" binding:"required,oneof=LEFT RIGHT"`
	SponsorAccountID string `json:"sponsorAccountID" binding:"omitempty,uuid"`
	FirstName        string `json:"firstName" binding:"required"`
	MiddleName       string `json:"middleName"`
	LastName         string `json:"lastName" binding:"required"`
}

// UpgradeAccountRequest re-runs the compensation plan with an UPGRADE code.
type UpgradeAccountRequest struct {
	AccountID      string `json:"accountID" binding:"required,uuid"`
	ActivationCode string `json:"activationCode" binding:"required"`
}

// AccountResponse is the outward representation of an account.
type AccountResponse struct {
	AccountID  string    `json:"accountID"`
	ParentID   *string   `json:"parentID,omitempty"`
	ParentSide *string   `json:"parentSide,omitempty"`
	ReferrerID *string   `json:"referrerID,omitempty"`
	PackageID  string    `json:"packageID"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName,omitempty"`
	LastName   string    `json:"lastName"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GenealogyResponse is the binary profile of an account: the node itself plus
// per-leg descendant counts.
type GenealogyResponse struct {
	Account            AccountResponse `json:"account"`
	LeftChildrenCount  int             `json:"leftChildrenCount"`
	RightChildrenCount int             `json:"rightChildrenCount"`
}

// ToAccountResponse converts a domain Account to its response form.
func ToAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:  a.AccountID,
		ParentID:   a.ParentID,
		ReferrerID: a.ReferrerID,
		PackageID:  a.PackageID,
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		LastName:   a.LastName,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
	}
	if a.ParentSide != nil {
		side := string(*a.ParentSide)
		resp.ParentSide = &side
	}
	return resp
}
