package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerLedgerEntryType classifies the finance rows consumed by the owner
// balance calculation.
type OwnerLedgerEntryType string

const (
	OwnerEntryIncome     OwnerLedgerEntryType = "income"
	OwnerEntryExpense    OwnerLedgerEntryType = "expense"
	OwnerEntryCommission OwnerLedgerEntryType = "commission"
	OwnerEntryPayout     OwnerLedgerEntryType = "payout"
)

// OwnerLedgerEntry is one raw finance row for an owner's property. The
// settlement engine reads these rows but never writes them; they are produced
// by the booking and expense pipelines upstream.
type OwnerLedgerEntry struct {
	EntryID        string               `json:"entryID"`
	OrganizationID string               `json:"organizationID"`
	OwnerID        string               `json:"ownerID"`
	PropertyID     int64                `json:"propertyID"`
	EntryType      OwnerLedgerEntryType `json:"entryType"`
	Amount         decimal.Decimal      `json:"amount"`
	Currency       string               `json:"currency"`
	EntryDate      time.Time            `json:"entryDate"`
	Description    string               `json:"description"`
	AuditFields
}

// OwnerBalanceSnapshot is the derived, non-persistent view of what an owner
// could withdraw. NetBalance = TotalIncome - TotalExpenses - CommissionDeductions,
// less any reconciled payout ledger rows. AvailableBalance additionally subtracts
// PendingPayouts (the owner's in-flight payout requests: pending, approved or
// paid) so that concurrent requests cannot double-spend the same funds.
type OwnerBalanceSnapshot struct {
	OwnerID              string          `json:"ownerID"`
	PropertyID           *int64          `json:"propertyID,omitempty"`
	StartDate            *time.Time      `json:"startDate,omitempty"`
	EndDate              *time.Time      `json:"endDate,omitempty"`
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	CommissionDeductions decimal.Decimal `json:"commissionDeductions"`
	NetBalance           decimal.Decimal `json:"netBalance"`
	PendingPayouts       decimal.Decimal `json:"pendingPayouts"`
	AvailableBalance     decimal.Decimal `json:"availableBalance"`
	Currency             string          `json:"currency"`
}
