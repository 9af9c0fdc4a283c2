package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerLedgerEntry is the database shape of one owner finance row. These rows
// are written by the upstream booking and expense pipelines; the settlement
// engine only reads them.
type OwnerLedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	OwnerID        string          `db:"owner_id"`
	PropertyID     int64           `db:"property_id"`
	EntryType      string          `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"`
	Currency       string          `db:"currency"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	AuditFields
}
