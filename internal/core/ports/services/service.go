package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account    AccountSvcFacade
	CompPlan   CompPlanSvcFacade
	Code       CodeSvcFacade
	Cashout    CashoutSvcFacade
	Wallet     WalletSvcFacade
	Package    PackageSvcFacade
	Setting    SettingSvcFacade
	Franchisee FranchiseeSvcFacade
	User       UserSvcFacade
}
