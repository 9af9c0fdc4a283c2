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

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for agent balances.
func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryWithTx = (*PgxBalanceRepository)(nil)

const balanceColumns = `agent_id, organization_id, agent_type, total_earned, total_paid, current_balance, pending_commissions, created_at, created_by, last_updated_at, last_updated_by`

// queryRower abstracts pgx.Tx and pgxpool.Pool for shared read helpers.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanBalance(row pgx.Row) (*models.AgentBalance, error) {
	var m models.AgentBalance
	err := row.Scan(
		&m.AgentID,
		&m.OrganizationID,
		&m.AgentType,
		&m.TotalEarned,
		&m.TotalPaid,
		&m.CurrentBalance,
		&m.PendingCommissions,
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

func findBalanceTx(ctx context.Context, q queryRower, organizationID, agentID string, forUpdate bool) (*domain.AgentBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM agent_balances
		WHERE organization_id = $1 AND agent_id = $2`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	query += `;`

	m, err := scanBalance(q.QueryRow(ctx, query, organizationID, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance for agent %s: %w", agentID, err)
	}
	balance := mapping.ToDomainAgentBalance(*m)
	return &balance, nil
}

// FindBalance retrieves the balance row for one (agent, organization) pair.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, organizationID, agentID string) (*domain.AgentBalance, error) {
	return findBalanceTx(ctx, r.Pool, organizationID, agentID, false)
}

// FindBalanceForUpdate selects the balance row and locks it for the duration
// of the caller's transaction.
func (r *PgxBalanceRepository) FindBalanceForUpdate(ctx context.Context, tx pgx.Tx, organizationID, agentID string) (*domain.AgentBalance, error) {
	return findBalanceTx(ctx, tx, organizationID, agentID, true)
}

// ListBalancesAtOrAbove retrieves all balances in the organization whose
// current balance is at or above the given threshold.
func (r *PgxBalanceRepository) ListBalancesAtOrAbove(ctx context.Context, organizationID string, threshold decimal.Decimal) ([]domain.AgentBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM agent_balances
		WHERE organization_id = $1 AND current_balance >= $2
		ORDER BY current_balance DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances at or above threshold: %w", err)
	}
	defer rows.Close()

	balances := []models.AgentBalance{}
	for rows.Next() {
		m, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}

	return mapping.ToDomainAgentBalanceSlice(balances), nil
}

// ListOrganizationIDs retrieves the distinct organizations holding at least
// one agent balance.
func (r *PgxBalanceRepository) ListOrganizationIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT organization_id FROM agent_balances;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization IDs: %w", err)
	}
	defer rows.Close()

	orgIDs := []string{}
	for rows.Next() {
		var orgID string
		if err := rows.Scan(&orgID); err != nil {
			return nil, fmt.Errorf("failed to scan organization ID: %w", err)
		}
		orgIDs = append(orgIDs, orgID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization IDs: %w", err)
	}
	return orgIDs, nil
}

// ApplyCommissionCreditInTx applies the commission credit as a single upsert:
// a zero row is created on the agent's first commission, and the increments
// happen in the same statement so concurrent credits serialize on the row.
func (r *PgxBalanceRepository) ApplyCommissionCreditInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, agentType domain.AgentType, amount decimal.Decimal, userID string, now time.Time) (*domain.AgentBalance, error) {
	query := `
		INSERT INTO agent_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, 0, $4, $4, $5, $6, $5, $6)
		ON CONFLICT (agent_id, organization_id) DO UPDATE SET
			total_earned        = agent_balances.total_earned + EXCLUDED.total_earned,
			current_balance     = agent_balances.current_balance + EXCLUDED.current_balance,
			pending_commissions = agent_balances.pending_commissions + EXCLUDED.pending_commissions,
			last_updated_at     = EXCLUDED.last_updated_at,
			last_updated_by     = EXCLUDED.last_updated_by
		RETURNING ` + balanceColumns + `;
	`
	m, err := scanBalance(tx.QueryRow(ctx, query, agentID, organizationID, string(agentType), amount, now, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to apply commission credit for agent %s: %w", agentID, err)
	}
	balance := mapping.ToDomainAgentBalance(*m)
	return &balance, nil
}

// ApplyPayoutDebitInTx applies the payout debit, guarded so the current
// balance can never go negative. A zero-row update means either the row is
// missing or the balance is short; the two cases are told apart afterwards.
func (r *PgxBalanceRepository) ApplyPayoutDebitInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, amount decimal.Decimal, userID string, now time.Time) (*domain.AgentBalance, error) {
	query := `
		UPDATE agent_balances
		SET total_paid      = total_paid + $1,
		    current_balance = current_balance - $1,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE organization_id = $4 AND agent_id = $5 AND current_balance >= $1
		RETURNING ` + balanceColumns + `;
	`
	m, err := scanBalance(tx.QueryRow(ctx, query, amount, now, userID, organizationID, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := findBalanceTx(ctx, tx, organizationID, agentID, false); findErr != nil {
				return nil, findErr
			}
			return nil, fmt.Errorf("%w: debit of %s exceeds current balance for agent %s", apperrors.ErrInsufficientBalance, amount.String(), agentID)
		}
		return nil, fmt.Errorf("failed to apply payout debit for agent %s: %w", agentID, err)
	}
	balance := mapping.ToDomainAgentBalance(*m)
	return &balance, nil
}

// ReducePendingInTx reduces pending_commissions after commission entries have
// been settled. Clamped at zero to absorb historical rounding drift.
func (r *PgxBalanceRepository) ReducePendingInTx(ctx context.Context, tx pgx.Tx, organizationID, agentID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE agent_balances
		SET pending_commissions = GREATEST(pending_commissions - $1, 0),
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE organization_id = $4 AND agent_id = $5;
	`
	tag, err := tx.Exec(ctx, query, amount, now, userID, organizationID, agentID)
	if err != nil {
		return fmt.Errorf("failed to reduce pending commissions for agent %s: %w", agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
