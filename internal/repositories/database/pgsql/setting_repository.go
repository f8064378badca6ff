package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	"github.com/odysseyhq/odyssey-backend/internal/models"
)

// PgxSettingRepository stores tunable business parameters.
type PgxSettingRepository struct {
	BaseRepository
}

// newPgxSettingRepository creates a new repository for setting data.
func newPgxSettingRepository(pool *pgxpool.Pool) portsrepo.SettingRepositoryFacade {
	return &PgxSettingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingRepositoryFacade = (*PgxSettingRepository)(nil)

func (r *PgxSettingRepository) GetSetting(ctx context.Context, name domain.SettingName) (decimal.Decimal, error) {
	var value decimal.Decimal
	query := `SELECT value FROM settings WHERE name = $1;`
	err := r.Pool.QueryRow(ctx, query, string(name)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to read setting "+string(name), err)
	}
	return value, nil
}

func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	query := `
		SELECT setting_id, name, value, created_at, created_by, last_updated_at, last_updated_by
		FROM settings
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list settings", err)
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var m models.Setting
		err := rows.Scan(
			&m.SettingID, &m.Name, &m.Value,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan setting row", err)
		}
		settings = append(settings, domain.Setting{
			SettingID: m.SettingID,
			Name:      domain.SettingName(m.Name),
			Value:     m.Value,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate setting rows", err)
	}
	return settings, nil
}

func (r *PgxSettingRepository) UpdateSetting(ctx context.Context, name domain.SettingName, value decimal.Decimal, updatedBy string, at time.Time) error {
	query := `
		UPDATE settings
		SET value = $2, last_updated_at = $3, last_updated_by = $4
		WHERE name = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, string(name), value, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update setting "+string(name), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
