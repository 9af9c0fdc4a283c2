package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// BalanceReader defines read operations for agent balances
type BalanceReader interface {
	// FindBalance retrieves the balance row for one (agent, organization) pair.
	FindBalance(ctx context.Context, organizationID, agentID string) (*domain.AgentBalance, error)

	// ListBalancesAtOrAbove retrieves all balances in the organization whose
	// current balance is at or above the given threshold.
	ListBalancesAtOrAbove(ctx context.Context, organizationID string, threshold decimal.Decimal) ([]domain.AgentBalance, error)

	// ListOrganizationIDs retrieves the distinct organizations that hold at
	// least one agent balance. Used by the periodic auto payout sweep.
	ListOrganizationIDs(ctx context.Context) ([]string, error)
}

// BalanceTransactionSupport defines balance mutations that run inside a
// caller-owned transaction. All mutations are single-statement atomic
// increments; the balance row is never read, modified in application code and
// written back.
type BalanceTransactionSupport interface {
	// FindBalanceForUpdate selects the balance row and locks it for update.
	FindBalanceForUpdate(ctx context.Context, tx pgx.Tx, organizationID, agentID string) (*domain.AgentBalance, error)

	// ApplyCommissionCreditInTx atomically applies
	// totalEarned += amount; currentBalance += amount; pendingCommissions += amount,
	// creating a zero row first if the agent has never earned before.
	ApplyCommissionCreditInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, agentType domain.AgentType, amount decimal.Decimal, userID string, now time.Time) (*domain.AgentBalance, error)

	// ApplyPayoutDebitInTx atomically applies
	// totalPaid += amount; currentBalance -= amount,
	// guarded so the current balance can never go negative.
	ApplyPayoutDebitInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, amount decimal.Decimal, userID string, now time.Time) (*domain.AgentBalance, error)

	// ReducePendingInTx atomically applies pendingCommissions -= amount after
	// commission entries have been settled.
	ReducePendingInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, amount decimal.Decimal, userID string, now time.Time) error
}

// BalanceRepositoryFacade combines all balance repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceTransactionSupport
}

// BalanceRepositoryWithTx extends BalanceRepositoryFacade with transaction capabilities
type BalanceRepositoryWithTx interface {
	BalanceRepositoryFacade
	TransactionManager
}
