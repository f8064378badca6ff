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

const cashoutMethodColumns = `
	cashout_method_id, account_id, channel, account_name, account_number,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCashoutMethodRepository stores saved disbursement destinations.
type PgxCashoutMethodRepository struct {
	BaseRepository
}

// newPgxCashoutMethodRepository creates a new repository for cashout method data.
func newPgxCashoutMethodRepository(pool *pgxpool.Pool) portsrepo.CashoutMethodRepositoryFacade {
	return &PgxCashoutMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashoutMethodRepositoryFacade = (*PgxCashoutMethodRepository)(nil)

func (r *PgxCashoutMethodRepository) SaveCashoutMethod(ctx context.Context, method domain.CashoutMethod) error {
	m := mapping.ToModelCashoutMethod(method)
	query := `
		INSERT INTO cashout_methods (
			cashout_method_id, account_id, channel, account_name, account_number,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CashoutMethodID, m.AccountID, m.Channel, m.AccountName, m.AccountNumber,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cashout method "+m.CashoutMethodID, err)
	}
	return nil
}

func (r *PgxCashoutMethodRepository) FindCashoutMethodByID(ctx context.Context, cashoutMethodID string) (*domain.CashoutMethod, error) {
	query := `SELECT ` + cashoutMethodColumns + ` FROM cashout_methods WHERE cashout_method_id = $1;`
	var m models.CashoutMethod
	err := r.Pool.QueryRow(ctx, query, cashoutMethodID).Scan(
		&m.CashoutMethodID, &m.AccountID, &m.Channel, &m.AccountName, &m.AccountNumber,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cashout method "+cashoutMethodID, err)
	}
	method := mapping.ToDomainCashoutMethod(m)
	return &method, nil
}

func (r *PgxCashoutMethodRepository) ListCashoutMethodsByAccount(ctx context.Context, accountID string) ([]domain.CashoutMethod, error) {
	query := `SELECT ` + cashoutMethodColumns + ` FROM cashout_methods WHERE account_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cashout methods for "+accountID, err)
	}
	defer rows.Close()

	var methods []domain.CashoutMethod
	for rows.Next() {
		var m models.CashoutMethod
		err := rows.Scan(
			&m.CashoutMethodID, &m.AccountID, &m.Channel, &m.AccountName, &m.AccountNumber,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cashout method row", err)
		}
		methods = append(methods, mapping.ToDomainCashoutMethod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate cashout method rows", err)
	}
	return methods, nil
}
