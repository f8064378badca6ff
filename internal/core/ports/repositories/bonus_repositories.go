package repositories

import (
	"context"

	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
)

// BonusRepositoryFacade looks up configured bonus rows. Absent rows mean "no
// bonus applies" to the engine, so both finders return ErrNotFound rather
// than inventing zero-valued bonuses.
type BonusRepositoryFacade interface {
	FindReferralBonus(ctx context.Context, packageReferrerID, packageReferredID string) (*domain.ReferralBonus, error)
	FindLeadershipBonus(ctx context.Context, packageID string, level int) (*domain.LeadershipBonus, error)
}
