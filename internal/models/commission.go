package models

import (
	"github.com/shopspring/decimal"
)

// CommissionEntry is the database shape of one commission record. The table
// carries a unique constraint on (booking_id, agent_id, agent_type) which is
// what makes event redelivery harmless.
type CommissionEntry struct {
	EntryID          string          `db:"entry_id"`
	OrganizationID   string          `db:"organization_id"`
	AgentID          string          `db:"agent_id"`
	AgentType        string          `db:"agent_type"`
	PropertyID       int64           `db:"property_id"`
	BookingID        int64           `db:"booking_id"`
	BaseAmount       decimal.Decimal `db:"base_amount"`
	CommissionRate   decimal.Decimal `db:"commission_rate"`
	CommissionAmount decimal.Decimal `db:"commission_amount"`
	Currency         string          `db:"currency"`
	Status           string          `db:"status"`
	ReferenceNumber  string          `db:"reference_number"`
	AuditFields
}
