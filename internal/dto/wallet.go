package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// WalletBalanceResponse is the signed balance of one wallet for one account.
type WalletBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Wallet    string          `json:"wallet"`
	Balance   decimal.Decimal `json:"balance"`
}

// WalletSummaryResponse lists every wallet balance for an account.
type WalletSummaryResponse struct {
	AccountID string                  `json:"accountID"`
	Balances  []WalletBalanceResponse `json:"balances"`
}

// ActivityResponse is the outward representation of a ledger entry.
type ActivityResponse struct {
	ActivityID   string          `json:"activityID"`
	AccountID    string          `json:"accountID"`
	ActivityType string          `json:"activityType"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Wallet       string          `json:"wallet"`
	Note         string          `json:"note,omitempty"`
	RefKind      *string         `json:"refKind,omitempty"`
	RefID        *string         `json:"refID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListActivitiesResponse is a token-paginated page of ledger entries.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	NextToken  string             `json:"nextToken,omitempty"`
}

// ToActivityResponse converts a domain Activity to its response form.
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	resp := ActivityResponse{
		ActivityID:   a.ActivityID,
		AccountID:    a.AccountID,
		ActivityType: string(a.Type),
		Amount:       a.Amount,
		Status:       string(a.Status),
		Wallet:       string(a.Wallet),
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
	}
	if a.Ref != nil {
		kind := string(a.Ref.Kind)
		resp.RefKind = &kind
		resp.RefID = &a.Ref.ID
	}
	return resp
}

// ToActivityResponses converts a slice of ledger entries.
func ToActivityResponses(activities []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, ToActivityResponse(&activities[i]))
	}
	return out
}
