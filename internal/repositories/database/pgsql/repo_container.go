package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	balanceRepo := newPgxBalanceRepository(dbPool)
	commissionRepo := newPgxCommissionRepository(dbPool, balanceRepo)
	payoutRepo := newPgxPayoutRepository(dbPool, balanceRepo, commissionRepo)
	ownerLedgerRepo := newPgxOwnerLedgerRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CommissionRepo:   commissionRepo,
		BalanceRepo:      balanceRepo,
		PayoutRepo:       payoutRepo,
		OwnerLedgerRepo:  ownerLedgerRepo,
		SettingsRepo:     settingsRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	}
}
