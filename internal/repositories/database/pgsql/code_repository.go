package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	"github.com/odysseyhq/odyssey-backend/internal/models"
	"github.com/odysseyhq/odyssey-backend/internal/utils/mapping"
)

const codeColumns = `
	code_id, code, package_id, code_type, status, owner_id, is_expiring, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCodeRepository stores activation codes.
type PgxCodeRepository struct {
	BaseRepository
}

// newPgxCodeRepository creates a new repository for code data.
func newPgxCodeRepository(pool *pgxpool.Pool) portsrepo.CodeRepositoryFacade {
	return &PgxCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CodeRepositoryFacade = (*PgxCodeRepository)(nil)

// SaveCodes inserts a generation batch in a single round trip.
func (r *PgxCodeRepository) SaveCodes(ctx context.Context, codes []domain.Code) error {
	if len(codes) == 0 {
		return nil
	}
	query := `
		INSERT INTO codes (
			code_id, code, package_id, code_type, status, owner_id, is_expiring, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, code := range codes {
		m := mapping.ToModelCode(code)
		batch.Queue(query,
			m.CodeID, m.Code, m.PackageID, m.CodeType, m.Status, m.OwnerID, m.IsExpiring, m.IsDeleted,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range codes {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert code batch", err)
		}
	}
	return nil
}

func (r *PgxCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes WHERE code_id = $1 AND is_deleted = FALSE;`
	return r.findOne(ctx, query, codeID)
}

func (r *PgxCodeRepository) FindCodeByValue(ctx context.Context, code string) (*domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes WHERE code = $1 AND is_deleted = FALSE;`
	return r.findOne(ctx, query, code)
}

func (r *PgxCodeRepository) ListCodesByOwner(ctx context.Context, ownerID string) ([]domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes WHERE owner_id = $1 AND is_deleted = FALSE ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list codes for owner "+ownerID, err)
	}
	defer rows.Close()

	var ms []models.Code
	for rows.Next() {
		m, err := scanCode(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan code row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate code rows", err)
	}
	return mapping.ToDomainCodeSlice(ms), nil
}

// MarkCodeUsed performs the one-way ACTIVE->USED transition. The status guard
// in the WHERE clause makes the update lose cleanly when another consumer got
// there first.
func (r *PgxCodeRepository) MarkCodeUsed(ctx context.Context, codeID string, updatedBy string, at time.Time) error {
	return r.UpdateCodeStatus(ctx, codeID, domain.CodeActive, domain.CodeUsed, updatedBy, at)
}

func (r *PgxCodeRepository) UpdateCodeStatus(ctx context.Context, codeID string, from, to domain.CodeStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE codes
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE code_id = $1 AND status = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, codeID, string(from), string(to), at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for code "+codeID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or the status moved under us. Distinguish so
		// callers can surface the right error.
		exists, err := r.codeExists(ctx, codeID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxCodeRepository) codeExists(ctx context.Context, codeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM codes WHERE code_id = $1 AND is_deleted = FALSE);`
	if err := r.Pool.QueryRow(ctx, query, codeID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check code "+codeID, err)
	}
	return exists, nil
}

func (r *PgxCodeRepository) findOne(ctx context.Context, query string, arg any) (*domain.Code, error) {
	m, err := scanCode(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find code", err)
	}
	code := mapping.ToDomainCode(*m)
	return &code, nil
}

func scanCode(row pgx.Row) (*models.Code, error) {
	var m models.Code
	err := row.Scan(
		&m.CodeID, &m.Code, &m.PackageID, &m.CodeType, &m.Status, &m.OwnerID, &m.IsExpiring, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
