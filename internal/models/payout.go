package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PayoutRequest is the database shape of one payout request row. Optional
// lifecycle columns are nullable; a partial unique index keeps at most one
// open auto payout per beneficiary.
type PayoutRequest struct {
	PayoutID           string          `db:"payout_id"`
	OrganizationID     string          `db:"organization_id"`
	BeneficiaryID      string          `db:"beneficiary_id"`
	BeneficiaryKind    string          `db:"beneficiary_kind"`
	RequestedAmount    decimal.Decimal `db:"requested_amount"`
	AvailableAtRequest decimal.Decimal `db:"available_at_request"`
	PayoutType         string          `db:"payout_type"`
	Status             string          `db:"status"`
	Currency           string          `db:"currency"`
	BankName           sql.NullString  `db:"bank_name"`
	AccountNumber      sql.NullString  `db:"account_number"`
	AccountHolder      sql.NullString  `db:"account_holder"`
	RequestedBy        string          `db:"requested_by"`
	Notes              sql.NullString  `db:"notes"`
	ApprovedBy         sql.NullString  `db:"approved_by"`
	ApprovalNotes      sql.NullString  `db:"approval_notes"`
	PaymentMethod      sql.NullString  `db:"payment_method"`
	PaymentReference   sql.NullString  `db:"payment_reference"`
	ReceiptURL         sql.NullString  `db:"receipt_url"`
	ConfirmedBy        sql.NullString  `db:"confirmed_by"`
	RequestedAt        time.Time       `db:"requested_at"`
	ApprovedAt         sql.NullTime    `db:"approved_at"`
	PaidAt             sql.NullTime    `db:"paid_at"`
	CompletedAt        sql.NullTime    `db:"completed_at"`
	RejectedAt         sql.NullTime    `db:"rejected_at"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	AuditFields
}
