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
	"github.com/odysseyhq/odyssey-backend/internal/utils/mapping"
)

const accountColumns = `
	account_id, parent_id, parent_side, referrer_id, package_id, activation_code_id,
	first_name, middle_name, last_name, status, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository stores the genealogy tree.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, parent_id, parent_side, referrer_id, package_id, activation_code_id,
			first_name, middle_name, last_name, status, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.ParentID, m.ParentSide, m.ReferrerID, m.PackageID, m.ActivationCodeID,
		m.FirstName, m.MiddleName, m.LastName, m.Status, m.IsDeleted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND is_deleted = FALSE;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, string(status), at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccountPackage(ctx context.Context, accountID string, packageID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE accounts
		SET package_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, packageID, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update package for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) FindChildOnSide(ctx context.Context, parentID string, side domain.ParentSide) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE parent_id = $1 AND parent_side = $2 AND is_deleted = FALSE;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, parentID, string(side)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find child of "+parentID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// GetAllParentsWithSide climbs the parent chain in one recursive query.
// Each row carries the ancestor, the leg the starting account sits in
// relative to it, the chain level, and the ancestor's package when present.
func (r *PgxAccountRepository) GetAllParentsWithSide(ctx context.Context, accountID string) ([]domain.ParentLink, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT a.parent_id AS ancestor_id, a.parent_side AS side, 1 AS level
			FROM accounts a
			WHERE a.account_id = $1 AND a.is_deleted = FALSE
		UNION ALL
			SELECT p.parent_id, p.parent_side, c.level + 1
			FROM accounts p
			JOIN chain c ON p.account_id = c.ancestor_id
			WHERE p.parent_id IS NOT NULL AND p.is_deleted = FALSE
		)
		SELECT
			anc.account_id, anc.parent_id, anc.parent_side, anc.referrer_id, anc.package_id, anc.activation_code_id,
			anc.first_name, anc.middle_name, anc.last_name, anc.status, anc.is_deleted,
			anc.created_at, anc.created_by, anc.last_updated_at, anc.last_updated_by,
			c.side, c.level,
			pkg.package_id, pkg.name, pkg.amount, pkg.point_value, pkg.flush_out_limit,
			pkg.has_pairing, pkg.is_franchise, pkg.is_bco
		FROM chain c
		JOIN accounts anc ON anc.account_id = c.ancestor_id
		LEFT JOIN packages pkg ON pkg.package_id = anc.package_id AND pkg.is_deleted = FALSE
		WHERE c.ancestor_id IS NOT NULL AND anc.is_deleted = FALSE
		ORDER BY c.level;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to walk ancestors of "+accountID, err)
	}
	defer rows.Close()

	var links []domain.ParentLink
	for rows.Next() {
		var m models.Account
		var side models.ParentSide
		var level int
		var pkgID, pkgName *string
		var pkgAmount, pkgPV, pkgFlush decimal.NullDecimal
		var pkgPairing, pkgFranchise, pkgBCO *bool

		err := rows.Scan(
			&m.AccountID, &m.ParentID, &m.ParentSide, &m.ReferrerID, &m.PackageID, &m.ActivationCodeID,
			&m.FirstName, &m.MiddleName, &m.LastName, &m.Status, &m.IsDeleted,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&side, &level,
			&pkgID, &pkgName, &pkgAmount, &pkgPV, &pkgFlush,
			&pkgPairing, &pkgFranchise, &pkgBCO,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ancestor row", err)
		}

		link := domain.ParentLink{
			Account: mapping.ToDomainAccount(m),
			Side:    domain.ParentSide(side),
			Level:   level,
		}
		if pkgID != nil {
			link.Package = &domain.Package{
				PackageID:     *pkgID,
				Name:          *pkgName,
				Amount:        pkgAmount.Decimal,
				PointValue:    pkgPV.Decimal,
				FlushOutLimit: pkgFlush.Decimal,
				HasPairing:    *pkgPairing,
				IsFranchise:   *pkgFranchise,
				IsBCO:         *pkgBCO,
			}
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ancestor rows", err)
	}
	return links, nil
}

// GetTwoLevelReferrers follows the referrer edge, capped at two levels.
func (r *PgxAccountRepository) GetTwoLevelReferrers(ctx context.Context, accountID string) ([]domain.ReferrerLink, error) {
	var links []domain.ReferrerLink

	current, err := r.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for level := 1; level <= 2 && current.ReferrerID != nil; level++ {
		referrer, err := r.FindAccountByID(ctx, *current.ReferrerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				break
			}
			return nil, err
		}
		link := domain.ReferrerLink{Account: *referrer, Level: level}
		pkg, err := r.findPackage(ctx, referrer.PackageID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		link.Package = pkg
		links = append(links, link)
		current = referrer
	}
	return links, nil
}

// CountDirectReferralsByPackage counts direct referrals at a package tier,
// excluding accounts activated through FREE_SLOT codes.
func (r *PgxAccountRepository) CountDirectReferralsByPackage(ctx context.Context, accountID, packageID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM accounts a
		JOIN codes c ON c.code_id = a.activation_code_id
		WHERE a.referrer_id = $1 AND a.package_id = $2
		  AND a.is_deleted = FALSE
		  AND c.code_type <> 'FREE_SLOT';
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID, packageID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count referrals of "+accountID, err)
	}
	return count, nil
}

// CountDescendantsBySide counts every account in one leg of the subtree.
func (r *PgxAccountRepository) CountDescendantsBySide(ctx context.Context, accountID string, side domain.ParentSide) (int, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT a.account_id
			FROM accounts a
			WHERE a.parent_id = $1 AND a.parent_side = $2 AND a.is_deleted = FALSE
		UNION ALL
			SELECT child.account_id
			FROM accounts child
			JOIN subtree s ON child.parent_id = s.account_id
			WHERE child.is_deleted = FALSE
		)
		SELECT COUNT(*) FROM subtree;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID, string(side)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count descendants of "+accountID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) FindAccountByActivationCodeID(ctx context.Context, codeID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE activation_code_id = $1 AND is_deleted = FALSE;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, codeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+codeID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) findPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	query := `
		SELECT package_id, name, amount, point_value, flush_out_limit,
		       has_pairing, is_franchise, is_bco,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM packages
		WHERE package_id = $1 AND is_deleted = FALSE;
	`
	var m models.Package
	err := r.Pool.QueryRow(ctx, query, packageID).Scan(
		&m.PackageID, &m.Name, &m.Amount, &m.PointValue, &m.FlushOutLimit,
		&m.HasPairing, &m.IsFranchise, &m.IsBCO,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find package "+packageID, err)
	}
	pkg := mapping.ToDomainPackage(m)
	return &pkg, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.ParentID, &m.ParentSide, &m.ReferrerID, &m.PackageID, &m.ActivationCodeID,
		&m.FirstName, &m.MiddleName, &m.LastName, &m.Status, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
