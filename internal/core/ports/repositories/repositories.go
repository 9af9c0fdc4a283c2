package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CommissionRepo   CommissionRepositoryFacade
	BalanceRepo      BalanceRepositoryFacade
	PayoutRepo       PayoutRepositoryFacade
	OwnerLedgerRepo  OwnerLedgerRepositoryFacade
	SettingsRepo     SettingsRepositoryFacade
	UserRepo         UserRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
