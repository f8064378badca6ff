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

const franchiseeColumns = `
	franchisee_id, activation_code_id, package_id, referrer_id,
	first_name, middle_name, last_name, email_address, contact_number, city,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxFranchiseeRepository stores franchise holders.
type PgxFranchiseeRepository struct {
	BaseRepository
}

// newPgxFranchiseeRepository creates a new repository for franchisee data.
func newPgxFranchiseeRepository(pool *pgxpool.Pool) portsrepo.FranchiseeRepositoryFacade {
	return &PgxFranchiseeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FranchiseeRepositoryFacade = (*PgxFranchiseeRepository)(nil)

func (r *PgxFranchiseeRepository) SaveFranchisee(ctx context.Context, franchisee domain.Franchisee) error {
	m := mapping.ToModelFranchisee(franchisee)
	query := `
		INSERT INTO franchisees (
			franchisee_id, activation_code_id, package_id, referrer_id,
			first_name, middle_name, last_name, email_address, contact_number, city,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FranchiseeID, m.ActivationCodeID, m.PackageID, m.ReferrerID,
		m.FirstName, m.MiddleName, m.LastName, m.EmailAddress, m.ContactNumber, m.City,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert franchisee "+m.FranchiseeID, err)
	}
	return nil
}

func (r *PgxFranchiseeRepository) FindFranchiseeByID(ctx context.Context, franchiseeID string) (*domain.Franchisee, error) {
	query := `SELECT ` + franchiseeColumns + ` FROM franchisees WHERE franchisee_id = $1;`
	return r.findOne(ctx, query, franchiseeID)
}

func (r *PgxFranchiseeRepository) FindFranchiseeByActivationCodeID(ctx context.Context, codeID string) (*domain.Franchisee, error) {
	query := `SELECT ` + franchiseeColumns + ` FROM franchisees WHERE activation_code_id = $1;`
	return r.findOne(ctx, query, codeID)
}

func (r *PgxFranchiseeRepository) findOne(ctx context.Context, query string, arg any) (*domain.Franchisee, error) {
	var m models.Franchisee
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.FranchiseeID, &m.ActivationCodeID, &m.PackageID, &m.ReferrerID,
		&m.FirstName, &m.MiddleName, &m.LastName, &m.EmailAddress, &m.ContactNumber, &m.City,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find franchisee", err)
	}
	franchisee := mapping.ToDomainFranchisee(m)
	return &franchisee, nil
}
