package repositories

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// CashoutMethodRepositoryFacade persists saved disbursement destinations.
type CashoutMethodRepositoryFacade interface {
	SaveCashoutMethod(ctx context.Context, method domain.CashoutMethod) error
	FindCashoutMethodByID(ctx context.Context, cashoutMethodID string) (*domain.CashoutMethod, error)
	ListCashoutMethodsByAccount(ctx context.Context, accountID string) ([]domain.CashoutMethod, error)
}
