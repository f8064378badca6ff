package services

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
)

// CodeReaderSvc defines read operations over activation codes. Reads apply
// lazy expiration: an ACTIVE expiring code past its window is transitioned to
// EXPIRED before being returned.
type CodeReaderSvc interface {
	// GetCodeByID retrieves a code by ID.
	GetCodeByID(ctx context.Context, codeID string) (*domain.Code, error)

	// VerifyCode checks a code value and reports whether it is redeemable.
	VerifyCode(ctx context.Context, code string) (*dto.VerifyCodeResponse, error)

	// ListCodesByOwner lists codes held by an account.
	ListCodesByOwner(ctx context.Context, ownerID string) ([]domain.Code, error)
}

// CodeWriterSvc defines code generation and the admin status toggle.
type CodeWriterSvc interface {
	// GenerateCodes mints a batch of unique codes for a package.
	GenerateCodes(ctx context.Context, req dto.GenerateCodesRequest, actorID string) ([]domain.Code, error)

	// ToggleCodeStatus flips ACTIVE<->DEACTIVATED. USED and EXPIRED codes
	// cannot be toggled.
	ToggleCodeStatus(ctx context.Context, codeID string, actorID string) (*domain.Code, error)
}

// CodeSvcFacade combines all code-related service interfaces.
type CodeSvcFacade interface {
	CodeReaderSvc
	CodeWriterSvc
}
