package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// SettingRepositoryFacade reads and writes the name->decimal parameter store.
// The compensation engine treats it as read-only within an invocation.
type SettingRepositoryFacade interface {
	// GetSetting returns ErrNotFound when the key is absent.
	GetSetting(ctx context.Context, name domain.SettingName) (decimal.Decimal, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	UpdateSetting(ctx context.Context, name domain.SettingName, value decimal.Decimal, updatedBy string, at time.Time) error
}
