package services

import (
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// CommissionCalculation is the outcome of one commission computation.
type CommissionCalculation struct {
	AgentID          string
	AgentType        domain.AgentType
	Rate             decimal.Decimal
	CommissionAmount decimal.Decimal
}

// ResolveCommissionRate picks the effective rate for an agent: the agent-level
// override when present, otherwise the organization rate for the agent's type.
func ResolveCommissionRate(agent *domain.User, agentType domain.AgentType, settings *domain.OrgSettings) decimal.Decimal {
	if agent != nil && agent.CommissionRate != nil {
		return *agent.CommissionRate
	}
	if agentType == domain.ReferralAgent {
		return settings.ReferralCommissionRate
	}
	return settings.RetailCommissionRate
}

// CalculateCommission computes baseAmount * rate / 100, rounded to 2 decimal
// places. It is a pure function: same inputs always produce the same output.
func CalculateCommission(baseAmount, rate decimal.Decimal) decimal.Decimal {
	return baseAmount.Mul(rate).Div(hundred).Round(2)
}

// CalculateCommissions computes the commission per agent leg of a booking.
// Retail legs are based on the booking's net revenue, referral legs on the
// management fee. The result preserves the order of legs.
func CalculateCommissions(netRevenue, managementFee decimal.Decimal, legs []CommissionLeg, settings *domain.OrgSettings) []CommissionCalculation {
	calcs := make([]CommissionCalculation, 0, len(legs))
	for _, leg := range legs {
		base := netRevenue
		if leg.AgentType == domain.ReferralAgent {
			base = managementFee
		}
		rate := ResolveCommissionRate(leg.Agent, leg.AgentType, settings)
		calcs = append(calcs, CommissionCalculation{
			AgentID:          leg.AgentID,
			AgentType:        leg.AgentType,
			Rate:             rate,
			CommissionAmount: CalculateCommission(base, rate),
		})
	}
	return calcs
}

// CommissionLeg is one agent's stake in a booking.
type CommissionLeg struct {
	AgentID   string
	AgentType domain.AgentType
	Agent     *domain.User
}
