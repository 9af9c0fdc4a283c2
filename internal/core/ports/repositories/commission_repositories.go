package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// CommissionReader defines read operations for commission entries
type CommissionReader interface {
	// FindEntry retrieves the commission entry for one (booking, agent, type) key.
	FindEntry(ctx context.Context, bookingID int64, agentID string, agentType domain.AgentType) (*domain.CommissionEntry, error)

	// ListEntriesByAgent retrieves a paginated list of an agent's commission entries.
	ListEntriesByAgent(ctx context.Context, organizationID, agentID string, limit, offset int) ([]domain.CommissionEntry, error)
}

// CommissionApplier defines the atomic commission application operation.
type CommissionApplier interface {
	// ApplyCommission inserts the entry and credits the agent's balance in a
	// single database transaction. If an entry with the same
	// (bookingID, agentID, agentType) already exists the call is a no-op:
	// applied is false and the returned balance is the current, uncredited one.
	ApplyCommission(ctx context.Context, entry domain.CommissionEntry) (balance *domain.AgentBalance, applied bool, err error)
}

// CommissionTransactionSupport defines commission operations that run inside a
// caller-owned transaction.
type CommissionTransactionSupport interface {
	// SettleEntriesForAgentInTx flips the agent's pending entries to settled and
	// returns the total amount settled. Must be called within a transaction.
	SettleEntriesForAgentInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, userID string, now time.Time) (decimal.Decimal, error)
}

// CommissionRepositoryFacade combines all commission repository interfaces.
type CommissionRepositoryFacade interface {
	CommissionReader
	CommissionApplier
	CommissionTransactionSupport
}
