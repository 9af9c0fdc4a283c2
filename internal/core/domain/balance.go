package domain

import (
	"github.com/shopspring/decimal"
)

// AgentBalance is the running settlement aggregate for one agent within one
// organization. Invariants: CurrentBalance == TotalEarned - TotalPaid at all
// times, and PendingCommissions equals the sum of this agent's unsettled
// commission entries. Rows are created lazily on first commission and mutated
// only through single-statement atomic increments at the storage layer.
type AgentBalance struct {
	AgentID            string          `json:"agentID"`
	OrganizationID     string          `json:"organizationID"`
	AgentType          AgentType       `json:"agentType"`
	TotalEarned        decimal.Decimal `json:"totalEarned"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	CurrentBalance     decimal.Decimal `json:"currentBalance"`
	PendingCommissions decimal.Decimal `json:"pendingCommissions"`
	AuditFields
}
