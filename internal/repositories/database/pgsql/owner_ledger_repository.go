package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	"github.com/propstay/settlement_backend/internal/models"
	"github.com/propstay/settlement_backend/internal/utils/mapping"
)

// PgxOwnerLedgerRepository reads the owner finance rows written by the
// upstream booking and expense pipelines. This repository never writes.
type PgxOwnerLedgerRepository struct {
	BaseRepository
}

func newPgxOwnerLedgerRepository(pool *pgxpool.Pool) *PgxOwnerLedgerRepository {
	return &PgxOwnerLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OwnerLedgerRepositoryFacade = (*PgxOwnerLedgerRepository)(nil)

const ownerLedgerColumns = `entry_id, organization_id, owner_id, property_id, entry_type, amount, currency, entry_date, description, created_at, created_by, last_updated_at, last_updated_by`

// appendLedgerFilter appends the optional filter predicates to query and args.
func appendLedgerFilter(query string, args []any, filter portsrepo.OwnerLedgerFilter) (string, []any) {
	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	return query, args
}

// GetOwnerLedgerTotals aggregates the owner's finance rows by entry type in a
// single scan.
func (r *PgxOwnerLedgerRepository) GetOwnerLedgerTotals(ctx context.Context, organizationID, ownerID string, filter portsrepo.OwnerLedgerFilter) (*portsrepo.OwnerLedgerTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN entry_type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'expense' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'commission' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'payout' THEN amount ELSE 0 END), 0)
		FROM owner_ledger_entries
		WHERE organization_id = $1 AND owner_id = $2`
	args := []any{organizationID, ownerID}
	query, args = appendLedgerFilter(query, args, filter)
	query += `;`

	var totals portsrepo.OwnerLedgerTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&totals.Income, &totals.Expenses, &totals.Commission, &totals.Payouts)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger totals for owner %s: %w", ownerID, err)
	}
	return &totals, nil
}

// ListEntries retrieves a paginated list of the owner's raw finance rows,
// newest first.
func (r *PgxOwnerLedgerRepository) ListEntries(ctx context.Context, organizationID, ownerID string, filter portsrepo.OwnerLedgerFilter, limit, offset int) ([]domain.OwnerLedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + ownerLedgerColumns + `
		FROM owner_ledger_entries
		WHERE organization_id = $1 AND owner_id = $2`
	args := []any{organizationID, ownerID}
	query, args = appendLedgerFilter(query, args, filter)

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, entry_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query owner ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.OwnerLedgerEntry{}
	for rows.Next() {
		var m models.OwnerLedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.OrganizationID,
			&m.OwnerID,
			&m.PropertyID,
			&m.EntryType,
			&m.Amount,
			&m.Currency,
			&m.EntryDate,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owner ledger row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owner ledger rows: %w", err)
	}

	return mapping.ToDomainOwnerLedgerEntrySlice(entries), nil
}
