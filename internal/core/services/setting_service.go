package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

type settingService struct {
	settingRepo portsrepo.SettingRepositoryFacade
	clock       Clock
}

// NewSettingService creates the plan-parameter service.
func NewSettingService(repos portsrepo.RepositoryProvider, clock Clock) portssvc.SettingSvcFacade {
	return &settingService{settingRepo: repos.SettingRepo, clock: clock}
}

var _ portssvc.SettingSvcFacade = (*settingService)(nil)

func (s *settingService) GetSetting(ctx context.Context, name domain.SettingName) (decimal.Decimal, error) {
	return s.settingRepo.GetSetting(ctx, name)
}

func (s *settingService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingRepo.ListSettings(ctx)
}

func (s *settingService) UpdateSetting(ctx context.Context, name domain.SettingName, value decimal.Decimal, actorID string) error {
	if err := s.settingRepo.UpdateSetting(ctx, name, value, actorID, s.clock.Now()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("setting updated",
		slog.String("name", string(name)),
		slog.String("value", value.String()),
		slog.String("updated_by", actorID))
	return nil
}
