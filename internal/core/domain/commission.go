package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AgentType distinguishes the two commission-earning agent roles.
type AgentType string

const (
	RetailAgent   AgentType = "retail-agent"
	ReferralAgent AgentType = "referral-agent"
)

// CommissionStatus tracks whether a commission has been paid out yet.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionSettled CommissionStatus = "settled"
)

// CommissionEntry is the immutable record of one commission computation for one
// agent on one booking. At most one entry may exist per (bookingID, agentID,
// agentType); repeated delivery of the same booking event must not create a second
// entry or credit the balance twice. Entries are never deleted; the only mutation
// allowed is the pending -> settled status flip when the funding payout completes.
type CommissionEntry struct {
	EntryID          string           `json:"entryID"`
	OrganizationID   string           `json:"organizationID"`
	AgentID          string           `json:"agentID"`
	AgentType        AgentType        `json:"agentType"`
	PropertyID       int64            `json:"propertyID"`
	BookingID        int64            `json:"bookingID"`
	BaseAmount       decimal.Decimal  `json:"baseAmount"`
	CommissionRate   decimal.Decimal  `json:"commissionRate"`
	CommissionAmount decimal.Decimal  `json:"commissionAmount"`
	Currency         string           `json:"currency"`
	Status           CommissionStatus `json:"status"`
	ReferenceNumber  string           `json:"referenceNumber"`
	AuditFields
}

// CommissionReference derives the human-facing reference for a commission entry:
// RB{bookingID} for retail bookings, RF{bookingID} for referral fees.
func CommissionReference(agentType AgentType, bookingID int64) string {
	if agentType == ReferralAgent {
		return fmt.Sprintf("RF%d", bookingID)
	}
	return fmt.Sprintf("RB%d", bookingID)
}
