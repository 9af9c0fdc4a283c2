package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// ListCommissionsParams holds pagination for listing commission entries.
type ListCommissionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// CommissionEntryResponse defines the data returned for a commission entry.
type CommissionEntryResponse struct {
	EntryID          string          `json:"entryID"`
	AgentID          string          `json:"agentID"`
	AgentType        string          `json:"agentType"`
	BookingID        int64           `json:"bookingID"`
	PropertyID       int64           `json:"propertyID"`
	BaseAmount       decimal.Decimal `json:"baseAmount"`
	CommissionRate   decimal.Decimal `json:"commissionRate"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	ReferenceNumber  string          `json:"referenceNumber"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListCommissionsResponse defines the paginated commission list response.
type ListCommissionsResponse struct {
	Entries []CommissionEntryResponse `json:"entries"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

// AgentBalanceResponse defines the data returned for an agent's balance.
type AgentBalanceResponse struct {
	AgentID            string          `json:"agentID"`
	AgentType          string          `json:"agentType"`
	TotalEarned        decimal.Decimal `json:"totalEarned"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	CurrentBalance     decimal.Decimal `json:"currentBalance"`
	PendingCommissions decimal.Decimal `json:"pendingCommissions"`
}

// ToCommissionEntryResponse converts a domain.CommissionEntry to its DTO.
func ToCommissionEntryResponse(e *domain.CommissionEntry) CommissionEntryResponse {
	return CommissionEntryResponse{
		EntryID:          e.EntryID,
		AgentID:          e.AgentID,
		AgentType:        string(e.AgentType),
		BookingID:        e.BookingID,
		PropertyID:       e.PropertyID,
		BaseAmount:       e.BaseAmount,
		CommissionRate:   e.CommissionRate,
		CommissionAmount: e.CommissionAmount,
		Currency:         e.Currency,
		Status:           string(e.Status),
		ReferenceNumber:  e.ReferenceNumber,
		CreatedAt:        e.CreatedAt,
	}
}

// ToCommissionEntryResponses converts a slice of domain entries.
func ToCommissionEntryResponses(entries []domain.CommissionEntry) []CommissionEntryResponse {
	responses := make([]CommissionEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToCommissionEntryResponse(&e)
	}
	return responses
}

// ToAgentBalanceResponse converts a domain.AgentBalance to its DTO.
func ToAgentBalanceResponse(b *domain.AgentBalance) AgentBalanceResponse {
	return AgentBalanceResponse{
		AgentID:            b.AgentID,
		AgentType:          string(b.AgentType),
		TotalEarned:        b.TotalEarned,
		TotalPaid:          b.TotalPaid,
		CurrentBalance:     b.CurrentBalance,
		PendingCommissions: b.PendingCommissions,
	}
}
