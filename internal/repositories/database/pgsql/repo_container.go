package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)
	codeRepo := newPgxCodeRepository(dbPool)
	packageRepo := newPgxPackageRepository(dbPool)
	settingRepo := newPgxSettingRepository(dbPool)
	bonusRepo := newPgxBonusRepository(dbPool)
	franchiseeRepo := newPgxFranchiseeRepository(dbPool)
	cashoutMethodRepo := newPgxCashoutMethodRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		ActivityRepo:      activityRepo,
		CodeRepo:          codeRepo,
		PackageRepo:       packageRepo,
		SettingRepo:       settingRepo,
		BonusRepo:         bonusRepo,
		FranchiseeRepo:    franchiseeRepo,
		CashoutMethodRepo: cashoutMethodRepo,
		UserRepo:          userRepo,
	}
}
