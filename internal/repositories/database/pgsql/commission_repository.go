package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	"github.com/propstay/settlement_backend/internal/models"
	"github.com/propstay/settlement_backend/internal/utils/mapping"
)

type PgxCommissionRepository struct {
	BaseRepository
	balanceRepo portsrepo.BalanceTransactionSupport
}

// newPgxCommissionRepository creates a new repository for commission entries.
// The balance repository is injected so that entry insert and balance credit
// run inside the same transaction.
func newPgxCommissionRepository(pool *pgxpool.Pool, balanceRepo portsrepo.BalanceTransactionSupport) portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
	}
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

const commissionColumns = `entry_id, organization_id, agent_id, agent_type, property_id, booking_id, base_amount, commission_rate, commission_amount, currency, status, reference_number, created_at, created_by, last_updated_at, last_updated_by`

func scanCommissionEntry(row pgx.Row) (*models.CommissionEntry, error) {
	var m models.CommissionEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.AgentID,
		&m.AgentType,
		&m.PropertyID,
		&m.BookingID,
		&m.BaseAmount,
		&m.CommissionRate,
		&m.CommissionAmount,
		&m.Currency,
		&m.Status,
		&m.ReferenceNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ApplyCommission inserts the commission entry and credits the agent's balance
// in a single transaction. The insert carries ON CONFLICT DO NOTHING on the
// (booking_id, agent_id, agent_type) key: when the entry already exists this
// is a redelivered event, nothing is credited and applied is false.
func (r *PgxCommissionRepository) ApplyCommission(ctx context.Context, entry domain.CommissionEntry) (*domain.AgentBalance, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCommissionEntry(entry)
	insertQuery := `
		INSERT INTO commission_entries (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (booking_id, agent_id, agent_type) DO NOTHING;
	`
	tag, err := tx.Exec(ctx, insertQuery,
		m.EntryID,
		m.OrganizationID,
		m.AgentID,
		m.AgentType,
		m.PropertyID,
		m.BookingID,
		m.BaseAmount,
		m.CommissionRate,
		m.CommissionAmount,
		m.Currency,
		m.Status,
		m.ReferenceNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert commission entry %s: %w", m.EntryID, err)
	}

	if tag.RowsAffected() == 0 {
		// Redelivery. Surface the current balance without crediting.
		balance, err := findBalanceTx(ctx, tx, entry.OrganizationID, entry.AgentID, false)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, err
		}
		if err := r.Commit(ctx, tx); err != nil {
			return nil, false, err
		}
		return balance, false, nil
	}

	balance, err := r.balanceRepo.ApplyCommissionCreditInTx(ctx, tx,
		entry.OrganizationID, entry.AgentID, entry.AgentType,
		entry.CommissionAmount, entry.CreatedBy, entry.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to credit balance for agent %s: %w", entry.AgentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return balance, true, nil
}

// FindEntry retrieves the commission entry for one (booking, agent, type) key.
func (r *PgxCommissionRepository) FindEntry(ctx context.Context, bookingID int64, agentID string, agentType domain.AgentType) (*domain.CommissionEntry, error) {
	query := `
		SELECT ` + commissionColumns + `
		FROM commission_entries
		WHERE booking_id = $1 AND agent_id = $2 AND agent_type = $3;
	`
	m, err := scanCommissionEntry(r.Pool.QueryRow(ctx, query, bookingID, agentID, string(agentType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find commission entry for booking %d agent %s: %w", bookingID, agentID, err)
	}
	entry := mapping.ToDomainCommissionEntry(*m)
	return &entry, nil
}

// ListEntriesByAgent retrieves a paginated list of an agent's commission entries,
// newest first.
func (r *PgxCommissionRepository) ListEntriesByAgent(ctx context.Context, organizationID, agentID string, limit, offset int) ([]domain.CommissionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + commissionColumns + `
		FROM commission_entries
		WHERE organization_id = $1 AND agent_id = $2
		ORDER BY created_at DESC, entry_id
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query commission entries for agent %s: %w", agentID, err)
	}
	defer rows.Close()

	entries := []models.CommissionEntry{}
	for rows.Next() {
		m, err := scanCommissionEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission entry row: %w", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commission entry rows: %w", err)
	}

	return mapping.ToDomainCommissionEntrySlice(entries), nil
}

// SettleEntriesForAgentInTx flips the agent's pending entries to settled and
// returns the total amount settled. Runs inside the caller's transaction.
func (r *PgxCommissionRepository) SettleEntriesForAgentInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		WITH settled AS (
			UPDATE commission_entries
			SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE organization_id = $4 AND agent_id = $5 AND status = $6
			RETURNING commission_amount
		)
		SELECT COALESCE(SUM(commission_amount), 0) FROM settled;
	`
	var total decimal.Decimal
	err := tx.QueryRow(ctx, query,
		string(domain.CommissionSettled), now, userID,
		organizationID, agentID, string(domain.CommissionPending),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to settle commission entries for agent %s: %w", agentID, err)
	}
	return total, nil
}
