package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	"github.com/odysseyhq/odyssey-backend/internal/models"
	"github.com/odysseyhq/odyssey-backend/internal/utils/mapping"
	"github.com/odysseyhq/odyssey-backend/internal/utils/pagination"
)

const activityColumns = `
	activity_id, account_id, activity_type, amount, status, wallet,
	ref_kind, ref_id, note, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

// activityQueries holds the ledger SQL; db is either the pool or an open
// transaction, so the engine's postings and the read paths share one
// implementation.
type activityQueries struct {
	db dbtx
}

// PgxActivityRepository is the append-only ledger store.
type PgxActivityRepository struct {
	BaseRepository
	activityQueries
}

// newPgxActivityRepository creates a new repository for ledger activities.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryWithTx {
	return &PgxActivityRepository{
		BaseRepository:  BaseRepository{Pool: pool},
		activityQueries: activityQueries{db: pool},
	}
}

var _ portsrepo.ActivityRepositoryWithTx = (*PgxActivityRepository)(nil)

// WithTx runs fn against a transactional view of the ledger. A non-nil
// error from fn rolls back every posting made through it.
func (r *PgxActivityRepository) WithTx(ctx context.Context, fn func(txRepo portsrepo.ActivityRepositoryFacade) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(&activityQueries{db: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// CreateActivity appends one ledger entry. Amount, type and wallet are never
// updated afterwards.
func (q *activityQueries) CreateActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activities (
			activity_id, account_id, activity_type, amount, status, wallet,
			ref_kind, ref_id, note, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.db.Exec(ctx, query,
		m.ActivityID, m.AccountID, m.Type, m.Amount, m.Status, m.Wallet,
		m.RefKind, m.RefID, m.Note, m.IsDeleted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert activity "+m.ActivityID, err)
	}
	return nil
}

func (q *activityQueries) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE activity_id = $1 AND is_deleted = FALSE;`
	row := q.db.QueryRow(ctx, query, activityID)
	m, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find activity "+activityID, err)
	}
	activity := mapping.ToDomainActivity(*m)
	return &activity, nil
}

// SumActivities sums signed amounts for an account and wallet, optionally
// restricted to the given activity types.
func (q *activityQueries) SumActivities(ctx context.Context, accountID string, wallet domain.WalletType, types ...domain.ActivityType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM activities
		WHERE account_id = $1 AND wallet = $2 AND is_deleted = FALSE`
	args := []any{accountID, string(wallet)}
	if len(types) > 0 {
		typeStrs := make([]string, len(types))
		for i, t := range types {
			typeStrs[i] = string(t)
		}
		query += ` AND activity_type = ANY($3)`
		args = append(args, typeStrs)
	}

	var total decimal.Decimal
	if err := q.db.QueryRow(ctx, query+";", args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum activities for account "+accountID, err)
	}
	return total, nil
}

// SumActivitiesBetween sums one activity type posted in [from, to).
func (q *activityQueries) SumActivitiesBetween(ctx context.Context, accountID string, wallet domain.WalletType, activityType domain.ActivityType, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM activities
		WHERE account_id = $1 AND wallet = $2 AND activity_type = $3
		  AND is_deleted = FALSE
		  AND created_at >= $4 AND created_at < $5;
	`
	var total decimal.Decimal
	err := q.db.QueryRow(ctx, query, accountID, string(wallet), string(activityType), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum activities in window for account "+accountID, err)
	}
	return total, nil
}

// SumWalletSigned computes the spendable balance: open or released cashouts
// count against the wallet, denied ones do not.
func (q *activityQueries) SumWalletSigned(ctx context.Context, accountID string, wallet domain.WalletType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN activity_type = 'CASHOUT' AND status <> 'DENIED' THEN -ABS(amount)
				WHEN activity_type = 'CASHOUT' THEN 0
				ELSE amount
			END
		), 0)
		FROM activities
		WHERE account_id = $1 AND wallet = $2 AND is_deleted = FALSE;
	`
	var total decimal.Decimal
	if err := q.db.QueryRow(ctx, query, accountID, string(wallet)).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return total, nil
}

func (q *activityQueries) HasCashoutBetween(ctx context.Context, accountID string, wallet domain.WalletType, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM activities
			WHERE account_id = $1 AND wallet = $2 AND activity_type = 'CASHOUT'
			  AND is_deleted = FALSE
			  AND created_at >= $3 AND created_at < $4
		);
	`
	var exists bool
	if err := q.db.QueryRow(ctx, query, accountID, string(wallet), from, to).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check cashouts for account "+accountID, err)
	}
	return exists, nil
}

func (q *activityQueries) HasPendingCashout(ctx context.Context, accountID string, wallet domain.WalletType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM activities
			WHERE account_id = $1 AND wallet = $2 AND activity_type = 'CASHOUT'
			  AND status IN ('REQUESTED', 'APPROVED')
			  AND is_deleted = FALSE
		);
	`
	var exists bool
	if err := q.db.QueryRow(ctx, query, accountID, string(wallet)).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check pending cashouts for account "+accountID, err)
	}
	return exists, nil
}

// UpdateActivityStatus advances a cashout's status. Amounts stay immutable;
// only cashout rows carry a moving status.
func (q *activityQueries) UpdateActivityStatus(ctx context.Context, activityID string, status domain.ActivityStatus, note string, updatedBy string, at time.Time) error {
	query := `
		UPDATE activities
		SET status = $2, note = $3, last_updated_at = $4, last_updated_by = $5
		WHERE activity_id = $1 AND activity_type = 'CASHOUT' AND is_deleted = FALSE;
	`
	tag, err := q.db.Exec(ctx, query, activityID, string(status), note, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update activity status "+activityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListActivities pages newest-first using a (created_at, activity_id) keyset
// token.
func (q *activityQueries) ListActivities(ctx context.Context, accountID string, wallet domain.WalletType, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + activityColumns + `
		FROM activities
		WHERE account_id = $1 AND wallet = $2 AND is_deleted = FALSE`
	args := []any{accountID, string(wallet)}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.ErrValidation
		}
		cursorAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		query += ` AND (created_at, activity_id) < ($3, $4)`
		args = append(args, cursorAt, fields[1])
	}
	query += ` ORDER BY created_at DESC, activity_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ";"
	args = append(args, limit+1)

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list activities for account "+accountID, err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activities = append(activities, mapping.ToDomainActivity(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate activity rows", err)
	}

	var token *string
	if len(activities) > limit {
		activities = activities[:limit]
		last := activities[limit-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.ActivityID)
		token = &t
	}
	return activities, token, nil
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var m models.Activity
	err := row.Scan(
		&m.ActivityID, &m.AccountID, &m.Type, &m.Amount, &m.Status, &m.Wallet,
		&m.RefKind, &m.RefID, &m.Note, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
