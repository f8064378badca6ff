package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// SettingReaderSvc reads plan parameters.
type SettingReaderSvc interface {
	GetSetting(ctx context.Context, name domain.SettingName) (decimal.Decimal, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}

// SettingWriterSvc updates plan parameters. Changes apply to subsequent
// compensation runs only; in-flight runs keep their snapshot.
type SettingWriterSvc interface {
	UpdateSetting(ctx context.Context, name domain.SettingName, value decimal.Decimal, actorID string) error
}

// SettingSvcFacade combines setting-related service interfaces.
type SettingSvcFacade interface {
	SettingReaderSvc
	SettingWriterSvc
}
