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

const packageColumns = `
	package_id, name, amount, point_value, flush_out_limit,
	has_pairing, is_franchise, is_bco,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxPackageRepository stores membership tiers.
type PgxPackageRepository struct {
	BaseRepository
}

// newPgxPackageRepository creates a new repository for package data.
func newPgxPackageRepository(pool *pgxpool.Pool) portsrepo.PackageRepositoryFacade {
	return &PgxPackageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PackageRepositoryFacade = (*PgxPackageRepository)(nil)

func (r *PgxPackageRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	m := mapping.ToModelPackage(pkg)
	query := `
		INSERT INTO packages (
			package_id, name, amount, point_value, flush_out_limit,
			has_pairing, is_franchise, is_bco, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PackageID, m.Name, m.Amount, m.PointValue, m.FlushOutLimit,
		m.HasPairing, m.IsFranchise, m.IsBCO,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert package "+m.PackageID, err)
	}
	return nil
}

func (r *PgxPackageRepository) FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE package_id = $1 AND is_deleted = FALSE;`
	m, err := scanPackage(r.Pool.QueryRow(ctx, query, packageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find package "+packageID, err)
	}
	pkg := mapping.ToDomainPackage(*m)
	return &pkg, nil
}

func (r *PgxPackageRepository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE is_deleted = FALSE ORDER BY amount;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list packages", err)
	}
	defer rows.Close()

	var pkgs []domain.Package
	for rows.Next() {
		m, err := scanPackage(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan package row", err)
		}
		pkgs = append(pkgs, mapping.ToDomainPackage(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate package rows", err)
	}
	return pkgs, nil
}

func scanPackage(row pgx.Row) (*models.Package, error) {
	var m models.Package
	err := row.Scan(
		&m.PackageID, &m.Name, &m.Amount, &m.PointValue, &m.FlushOutLimit,
		&m.HasPairing, &m.IsFranchise, &m.IsBCO,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
