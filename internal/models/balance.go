package models

import (
	"github.com/shopspring/decimal"
)

// AgentBalance is the database shape of the per-agent running balance row.
// The table enforces current_balance = total_earned - total_paid and
// non-negative current_balance with CHECK constraints.
type AgentBalance struct {
	AgentID            string          `db:"agent_id"`
	OrganizationID     string          `db:"organization_id"`
	AgentType          string          `db:"agent_type"`
	TotalEarned        decimal.Decimal `db:"total_earned"`
	TotalPaid          decimal.Decimal `db:"total_paid"`
	CurrentBalance     decimal.Decimal `db:"current_balance"`
	PendingCommissions decimal.Decimal `db:"pending_commissions"`
	AuditFields
}
