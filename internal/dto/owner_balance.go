package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// OwnerBalanceParams holds the optional filters for an owner balance snapshot.
type OwnerBalanceParams struct {
	PropertyID *int64     `form:"propertyID"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// OwnerLedgerParams holds filters and pagination for listing ledger entries.
type OwnerLedgerParams struct {
	PropertyID *int64     `form:"propertyID"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50"`
	Offset     int        `form:"offset,default=0"`
}

// OwnerBalanceResponse defines the owner balance snapshot response.
type OwnerBalanceResponse struct {
	OwnerID              string          `json:"ownerID"`
	PropertyID           *int64          `json:"propertyID,omitempty"`
	FromDate             string          `json:"fromDate,omitempty"`
	ToDate               string          `json:"toDate,omitempty"`
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	CommissionDeductions decimal.Decimal `json:"commissionDeductions"`
	NetBalance           decimal.Decimal `json:"netBalance"`
	PendingPayouts       decimal.Decimal `json:"pendingPayouts"`
	AvailableBalance     decimal.Decimal `json:"availableBalance"`
	Currency             string          `json:"currency"`
}

// OwnerLedgerEntryResponse defines the data returned for one ledger entry.
type OwnerLedgerEntryResponse struct {
	EntryID     string          `json:"entryID"`
	PropertyID  int64           `json:"propertyID"`
	EntryType   string          `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
}

// OwnerLedgerResponse defines the paginated ledger list response.
type OwnerLedgerResponse struct {
	Entries []OwnerLedgerEntryResponse `json:"entries"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
}

// ToOwnerBalanceResponse converts a domain snapshot to its DTO.
func ToOwnerBalanceResponse(s *domain.OwnerBalanceSnapshot) OwnerBalanceResponse {
	resp := OwnerBalanceResponse{
		OwnerID:              s.OwnerID,
		PropertyID:           s.PropertyID,
		TotalIncome:          s.TotalIncome,
		TotalExpenses:        s.TotalExpenses,
		CommissionDeductions: s.CommissionDeductions,
		NetBalance:           s.NetBalance,
		PendingPayouts:       s.PendingPayouts,
		AvailableBalance:     s.AvailableBalance,
		Currency:             s.Currency,
	}
	if s.StartDate != nil {
		resp.FromDate = s.StartDate.Format("2006-01-02")
	}
	if s.EndDate != nil {
		resp.ToDate = s.EndDate.Format("2006-01-02")
	}
	return resp
}

// ToOwnerLedgerEntryResponse converts a domain ledger entry to its DTO.
func ToOwnerLedgerEntryResponse(e *domain.OwnerLedgerEntry) OwnerLedgerEntryResponse {
	return OwnerLedgerEntryResponse{
		EntryID:     e.EntryID,
		PropertyID:  e.PropertyID,
		EntryType:   string(e.EntryType),
		Amount:      e.Amount,
		Currency:    e.Currency,
		EntryDate:   e.EntryDate,
		Description: e.Description,
	}
}
