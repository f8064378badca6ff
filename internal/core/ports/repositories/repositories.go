package repositories

// RepositoryProvider bundles every repository implementation so the service
// container can be wired from a single value.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	ActivityRepo      ActivityRepositoryWithTx
	CodeRepo          CodeRepositoryFacade
	PackageRepo       PackageRepositoryFacade
	SettingRepo       SettingRepositoryFacade
	BonusRepo         BonusRepositoryFacade
	FranchiseeRepo    FranchiseeRepositoryFacade
	CashoutMethodRepo CashoutMethodRepositoryFacade
	UserRepo          UserRepositoryFacade
}
