package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	"github.com/odysseyhq/odyssey-backend/internal/models"
	"github.com/odysseyhq/odyssey-backend/internal/utils/mapping"
)

// PgxBonusRepository reads configured bonus rows.
type PgxBonusRepository struct {
	BaseRepository
}

// newPgxBonusRepository creates a new repository for bonus data.
func newPgxBonusRepository(pool *pgxpool.Pool) portsrepo.BonusRepositoryFacade {
	return &PgxBonusRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BonusRepositoryFacade = (*PgxBonusRepository)(nil)

func (r *PgxBonusRepository) FindReferralBonus(ctx context.Context, packageReferrerID, packageReferredID string) (*domain.ReferralBonus, error) {
	query := `
		SELECT referral_bonus_id, package_referrer_id, package_referred_id, point_value,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM referral_bonuses
		WHERE package_referrer_id = $1 AND package_referred_id = $2;
	`
	var m models.ReferralBonus
	err := r.Pool.QueryRow(ctx, query, packageReferrerID, packageReferredID).Scan(
		&m.ReferralBonusID, &m.PackageReferrerID, &m.PackageReferredID, &m.PointValue,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find referral bonus", err)
	}
	bonus := mapping.ToDomainReferralBonus(m)
	return &bonus, nil
}

func (r *PgxBonusRepository) FindLeadershipBonus(ctx context.Context, packageID string, level int) (*domain.LeadershipBonus, error) {
	query := `
		SELECT leadership_bonus_id, package_id, level, point_value_percentage,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM leadership_bonuses
		WHERE package_id = $1 AND level = $2;
	`
	var m models.LeadershipBonus
	err := r.Pool.QueryRow(ctx, query, packageID, level).Scan(
		&m.LeadershipBonusID, &m.PackageID, &m.Level, &m.PointValuePercentage,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find leadership bonus", err)
	}
	bonus := mapping.ToDomainLeadershipBonus(m)
	return &bonus, nil
}
