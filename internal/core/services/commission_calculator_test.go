package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/core/services"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		rate     string
		expected string
	}{
		{"whole numbers", "200", "10", "20"},
		{"rounds half up", "333.33", "10", "33.33"},
		{"repeating fraction", "100", "33.33", "33.33"},
		{"sub-cent rounds to two places", "0.05", "10", "0.01"},
		{"zero rate", "500", "0", "0"},
		{"full rate", "500", "100", "500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := decimal.RequireFromString(tc.base)
			rate := decimal.RequireFromString(tc.rate)
			got := services.CalculateCommission(base, rate)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got.String())
		})
	}
}

func TestCalculateCommission_Deterministic(t *testing.T) {
	base := decimal.RequireFromString("1234.56")
	rate := decimal.RequireFromString("7.5")

	first := services.CalculateCommission(base, rate)
	second := services.CalculateCommission(base, rate)

	assert.True(t, first.Equal(second))
}

func TestResolveCommissionRate_AgentOverride(t *testing.T) {
	override := decimal.NewFromInt(15)
	agent := &domain.User{
		UserID:         "agent-1",
		Role:           domain.RoleRetailAgent,
		CommissionRate: &override,
	}
	settings := domain.DefaultOrgSettings("org-1")

	rate := services.ResolveCommissionRate(agent, domain.RetailAgent, &settings)

	assert.True(t, rate.Equal(override))
}

func TestResolveCommissionRate_OrgFallback(t *testing.T) {
	agent := &domain.User{UserID: "agent-1", Role: domain.RoleRetailAgent}
	settings := domain.DefaultOrgSettings("org-1")
	settings.RetailCommissionRate = decimal.NewFromInt(12)
	settings.ReferralCommissionRate = decimal.NewFromInt(5)

	retail := services.ResolveCommissionRate(agent, domain.RetailAgent, &settings)
	referral := services.ResolveCommissionRate(nil, domain.ReferralAgent, &settings)

	assert.True(t, retail.Equal(decimal.NewFromInt(12)))
	assert.True(t, referral.Equal(decimal.NewFromInt(5)))
}

func TestCalculateCommissions_PerLeg(t *testing.T) {
	override := decimal.NewFromInt(20)
	settings := domain.DefaultOrgSettings("org-1")
	settings.RetailCommissionRate = decimal.NewFromInt(10)
	settings.ReferralCommissionRate = decimal.NewFromInt(5)

	legs := []services.CommissionLeg{
		{AgentID: "retail-1", AgentType: domain.RetailAgent},
		{AgentID: "referral-1", AgentType: domain.ReferralAgent},
		{AgentID: "retail-2", AgentType: domain.RetailAgent, Agent: &domain.User{UserID: "retail-2", CommissionRate: &override}},
	}

	calcs := services.CalculateCommissions(decimal.NewFromInt(1000), decimal.NewFromInt(150), legs, &settings)

	assert.Len(t, calcs, 3)
	// Retail legs are based on net revenue, the referral leg on the management fee.
	assert.True(t, calcs[0].CommissionAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, calcs[1].CommissionAmount.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, calcs[2].CommissionAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "retail-1", calcs[0].AgentID)
	assert.Equal(t, "referral-1", calcs[1].AgentID)
}
