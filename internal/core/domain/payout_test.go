package domain_test

import (
	"testing"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPayoutStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.PayoutStatus
		to   domain.PayoutStatus
		want bool
	}{
		{"pending to approved", domain.PayoutPending, domain.PayoutApproved, true},
		{"pending to rejected", domain.PayoutPending, domain.PayoutRejected, true},
		{"pending to cancelled", domain.PayoutPending, domain.PayoutCancelled, true},
		{"pending to paid skips approval", domain.PayoutPending, domain.PayoutPaid, false},
		{"pending to completed skips lifecycle", domain.PayoutPending, domain.PayoutCompleted, false},
		{"approved to paid", domain.PayoutApproved, domain.PayoutPaid, true},
		{"approved to cancelled", domain.PayoutApproved, domain.PayoutCancelled, true},
		{"approved to rejected not allowed", domain.PayoutApproved, domain.PayoutRejected, false},
		{"paid to completed", domain.PayoutPaid, domain.PayoutCompleted, true},
		{"paid to cancelled not allowed", domain.PayoutPaid, domain.PayoutCancelled, false},
		{"completed is terminal", domain.PayoutCompleted, domain.PayoutCancelled, false},
		{"rejected is terminal", domain.PayoutRejected, domain.PayoutApproved, false},
		{"cancelled is terminal", domain.PayoutCancelled, domain.PayoutPending, false},
		{"no backwards move", domain.PayoutApproved, domain.PayoutPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestPayoutStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.PayoutPending.IsTerminal())
	assert.False(t, domain.PayoutApproved.IsTerminal())
	assert.False(t, domain.PayoutPaid.IsTerminal())
	assert.True(t, domain.PayoutCompleted.IsTerminal())
	assert.True(t, domain.PayoutRejected.IsTerminal())
	assert.True(t, domain.PayoutCancelled.IsTerminal())
}

func TestCommissionReference(t *testing.T) {
	assert.Equal(t, "RB42", domain.CommissionReference(domain.RetailAgent, 42))
	assert.Equal(t, "RF42", domain.CommissionReference(domain.ReferralAgent, 42))
}

func TestUserRole_AgentRole(t *testing.T) {
	assert.True(t, domain.RoleRetailAgent.AgentRole())
	assert.True(t, domain.RoleReferralAgent.AgentRole())
	assert.False(t, domain.RoleAdmin.AgentRole())
	assert.False(t, domain.RoleOwner.AgentRole())
}
