package dto

import (
	"time"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// GenerateCodesRequest asks for a batch of fresh registration codes.
type GenerateCodesRequest struct {
	PackageID  string `json:"packageID" binding:"required,uuid"`
	CodeType   string `json:"codeType" binding:"required,oneof=ACTIVATION UPGRADE REACTIVATION FREE_SLOT"`
	Quantity   int    `json:"quantity" binding:"required,min=1,max=500"`
	OwnerID    string `json:"ownerID" binding:"omitempty,uuid"`
	IsExpiring bool   `json:"isExpiring"`
}

// VerifyCodeRequest checks a code value without consuming it.
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ToggleCodeStatusRequest flips a code between ACTIVE and DEACTIVATED.
type ToggleCodeStatusRequest struct {
	CodeID string `json:"codeID" binding:"required,uuid"`
}

// CodeResponse is the outward representation of a registration code.
type CodeResponse struct {
	CodeID     string     `json:"codeID"`
	Code       string     `json:"code"`
	CodeType   string     `json:"codeType"`
	Status     string     `json:"status"`
	PackageID  string     `json:"packageID"`
	OwnerID    *string    `json:"ownerID,omitempty"`
	IsExpiring bool       `json:"isExpiring"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// VerifyCodeResponse carries the verification verdict plus the package the
// code would activate.
type VerifyCodeResponse struct {
	Valid       bool   `json:"valid"`
	Status      string `json:"status"`
	PackageID   string `json:"packageID,omitempty"`
	PackageName string `json:"packageName,omitempty"`
}

// ToCodeResponse converts a domain Code to its response form. expiresAt is
// computed by the service from the expiration window setting.
func ToCodeResponse(c *domain.Code, expiresAt *time.Time) CodeResponse {
	return CodeResponse{
		CodeID:     c.CodeID,
		Code:       c.Code,
		CodeType:   string(c.CodeType),
		Status:     string(c.Status),
		PackageID:  c.PackageID,
		OwnerID:    c.OwnerID,
		IsExpiring: c.IsExpiring,
		ExpiresAt:  expiresAt,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCodeResponses converts a slice of codes without expiry computation.
func ToCodeResponses(codes []domain.Code) []CodeResponse {
	out := make([]CodeResponse, 0, len(codes))
	for i := range codes {
		out = append(out, ToCodeResponse(&codes[i], nil))
	}
	return out
}
