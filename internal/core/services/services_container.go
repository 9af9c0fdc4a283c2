package services

import (
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Leaf services first: everything downstream depends on settings and
	// the notification sink.
	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Notifier = NewNotificationService(repos.NotificationRepo)
	container.User = NewUserService(repos.UserRepo)

	container.OwnerBalance = NewOwnerBalanceService(
		repos.OwnerLedgerRepo,
		repos.PayoutRepo,
		repos.UserRepo,
		container.Settings,
	)

	container.Commission = NewCommissionService(
		repos.CommissionRepo,
		repos.BalanceRepo,
		repos.PayoutRepo,
		repos.UserRepo,
		container.Settings,
		container.Notifier,
	)

	container.Payout = NewPayoutService(
		repos.PayoutRepo,
		repos.BalanceRepo,
		repos.UserRepo,
		container.OwnerBalance,
		container.Settings,
		container.Notifier,
	)

	container.Token = NewTokenService(cfg, container.User)

	return container
}
