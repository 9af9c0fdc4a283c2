package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// OwnerLedgerFilter narrows the owner ledger aggregation. PropertyID and the
// date bounds are optional.
type OwnerLedgerFilter struct {
	PropertyID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// OwnerLedgerTotals holds the per-type sums of an owner's finance rows.
// Payouts covers reconciled withdrawals already recorded in the ledger.
type OwnerLedgerTotals struct {
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Commission decimal.Decimal
	Payouts    decimal.Decimal
}

// OwnerLedgerReader defines read operations over owner finance rows. The
// settlement engine consumes these rows but never writes them.
type OwnerLedgerReader interface {
	// GetOwnerLedgerTotals aggregates income, expense and commission rows for
	// an owner, optionally restricted to one property and a date range.
	GetOwnerLedgerTotals(ctx context.Context, organizationID, ownerID string, filter OwnerLedgerFilter) (*OwnerLedgerTotals, error)

	// ListEntries retrieves a paginated list of the owner's raw finance rows.
	ListEntries(ctx context.Context, organizationID, ownerID string, filter OwnerLedgerFilter, limit, offset int) ([]domain.OwnerLedgerEntry, error)
}

// OwnerLedgerRepositoryFacade is the full owner ledger repository surface.
type OwnerLedgerRepositoryFacade interface {
	OwnerLedgerReader
}
