package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// CashoutSvc defines the cashout lifecycle. A cashout is a CASHOUT activity
// that debits the source wallet the moment it is requested; releasing it
// posts the PAYOUT and COMPANY_TAX pair, denying it restores the balance.
type CashoutSvc interface {
	// RequestCashout validates schedule, minimum and balance, then posts the
	// CASHOUT activity in REQUESTED status.
	RequestCashout(ctx context.Context, req dto.CreateCashoutRequest, actorID string) (*dto.CashoutResponse, error)

	// ApproveCashout moves REQUESTED -> APPROVED.
	ApproveCashout(ctx context.Context, activityID string, actorID string) (*dto.CashoutResponse, error)

	// ReleaseCashout moves APPROVED -> RELEASED and posts the derived
	// PAYOUT and COMPANY_TAX activities atomically.
	ReleaseCashout(ctx context.Context, activityID string, actorID string) (*dto.CashoutResponse, error)

	// DenyCashout moves REQUESTED or APPROVED -> DENIED, restoring the
	// wallet balance.
	DenyCashout(ctx context.Context, activityID string, note string, actorID string) (*dto.CashoutResponse, error)
}

// CashoutSvcFacade is the full cashout surface.
type CashoutSvcFacade interface {
	CashoutSvc
}
