package services

import (
	portsrepo "github.com/odysseyhq/odyssey-backend/internal/core/ports/repositories"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clock Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The engine comes first since account and franchisee flows drive it.
	container.CompPlan = NewCompPlanService(repos, clock)

	container.Account = NewAccountService(repos, container.CompPlan, clock)
	container.Franchisee = NewFranchiseeService(repos, container.CompPlan, clock)
	container.Code = NewCodeService(repos, clock)
	container.Cashout = NewCashoutService(repos, clock)
	container.Wallet = NewWalletService(repos)
	container.Package = NewPackageService(repos, clock)
	container.Setting = NewSettingService(repos, clock)
	container.User = NewUserService(repos, cfg, clock)

	return container
}
