package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// BookingConfirmedRequest is the webhook payload emitted by the booking
// system when a reservation is confirmed.
type BookingConfirmedRequest struct {
	BookingID          int64            `json:"bookingID" binding:"required"`
	PropertyID         int64            `json:"propertyID" binding:"required"`
	OwnerID            string           `json:"ownerID" binding:"required"`
	NetRevenue         decimal.Decimal  `json:"netRevenue" binding:"required"`
	TotalBookingAmount decimal.Decimal  `json:"totalBookingAmount,omitempty"`
	ManagementFee      *decimal.Decimal `json:"managementFee,omitempty"`
	Currency           string           `json:"currency" binding:"required,uppercase,len=3"`
	RetailAgentID      *string          `json:"retailAgentID,omitempty"`
	ReferralAgentID    *string          `json:"referralAgentID,omitempty"`
	BookingDate        time.Time        `json:"bookingDate" binding:"required"`
}

// ResolvedManagementFee returns the base referral commissions are computed on.
// When the booking payload omits the management fee it is derived from the
// total booking amount and the organization's management fee percentage.
// Retail commissions are computed on NetRevenue, never on this value.
func (r BookingConfirmedRequest) ResolvedManagementFee(managementFeePercent decimal.Decimal) decimal.Decimal {
	if r.ManagementFee != nil {
		return *r.ManagementFee
	}
	return r.TotalBookingAmount.Mul(managementFeePercent).Div(decimal.NewFromInt(100))
}

// AgentSettlementFailure reports a single agent leg that could not be settled.
type AgentSettlementFailure struct {
	AgentID   string `json:"agentID"`
	AgentType string `json:"agentType"`
	Reason    string `json:"reason"`
}

// SettlementResult is the outcome of processing a booking-confirmed event.
// Entries holds the commission entries applied (or already present, when the
// event is a redelivery), Failures the agent legs that were skipped, and
// TriggeredPayouts any auto payout requests raised by the new balances.
type SettlementResult struct {
	BookingID        int64                     `json:"bookingID"`
	Entries          []CommissionEntryResponse `json:"entries"`
	Failures         []AgentSettlementFailure  `json:"failures,omitempty"`
	TriggeredPayouts []PayoutResponse          `json:"triggeredPayouts,omitempty"`
}

// ToAgentSettlementFailure builds a failure record for an agent leg.
func ToAgentSettlementFailure(agentID string, agentType domain.AgentType, err error) AgentSettlementFailure {
	return AgentSettlementFailure{
		AgentID:   agentID,
		AgentType: string(agentType),
		Reason:    err.Error(),
	}
}
