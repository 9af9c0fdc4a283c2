package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus is the lifecycle state of a payout request.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutApproved  PayoutStatus = "approved"
	PayoutPaid      PayoutStatus = "paid"
	PayoutCompleted PayoutStatus = "completed"
	PayoutRejected  PayoutStatus = "rejected"
	PayoutCancelled PayoutStatus = "cancelled"
)

// PayoutType distinguishes manually requested payouts from threshold-triggered ones.
type PayoutType string

const (
	PayoutFull    PayoutType = "full"
	PayoutPartial PayoutType = "partial"
	PayoutAuto    PayoutType = "auto"
)

// BeneficiaryKind identifies who the payout is for.
type BeneficiaryKind string

const (
	BeneficiaryAgent BeneficiaryKind = "agent"
	BeneficiaryOwner BeneficiaryKind = "owner"
)

// SystemRequester is recorded as RequestedBy on auto-created payout requests.
const SystemRequester = "system"

// payoutTransitions enumerates the legal forward moves of the payout lifecycle:
// pending -> approved -> paid -> completed, with pending -> rejected and
// pending|approved -> cancelled as side branches. completed, rejected and
// cancelled are terminal.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:  {PayoutApproved, PayoutRejected, PayoutCancelled},
	PayoutApproved: {PayoutPaid, PayoutCancelled},
	PayoutPaid:     {PayoutCompleted},
}

// CanTransition reports whether a payout in status from may move to status to.
func (from PayoutStatus) CanTransition(to PayoutStatus) bool {
	for _, next := range payoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s PayoutStatus) IsTerminal() bool {
	return len(payoutTransitions[s]) == 0
}

// BankDetails carries the beneficiary's receiving account information,
// captured at request time so later edits to the beneficiary's profile
// do not change where an in-flight payout is sent.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

// PayoutRequest tracks one withdrawal attempt, for agents and owners alike,
// through the approval lifecycle. RequestedAmount never exceeds
// AvailableAtRequest, the balance snapshot taken when the request was created.
type PayoutRequest struct {
	PayoutID           string          `json:"payoutID"`
	OrganizationID     string          `json:"organizationID"`
	BeneficiaryID      string          `json:"beneficiaryID"`
	BeneficiaryKind    BeneficiaryKind `json:"beneficiaryKind"`
	RequestedAmount    decimal.Decimal `json:"requestedAmount"`
	AvailableAtRequest decimal.Decimal `json:"availableAtRequest"`
	PayoutType         PayoutType      `json:"payoutType"`
	Status             PayoutStatus    `json:"status"`
	Currency           string          `json:"currency"`
	BankDetails
	RequestedBy      string     `json:"requestedBy"`
	Notes            string     `json:"notes,omitempty"`
	ApprovedBy       string     `json:"approvedBy,omitempty"`
	ApprovalNotes    string     `json:"approvalNotes,omitempty"`
	PaymentMethod    string     `json:"paymentMethod,omitempty"`
	PaymentReference string     `json:"paymentReference,omitempty"`
	ReceiptURL       string     `json:"receiptURL,omitempty"`
	ConfirmedBy      string     `json:"confirmedBy,omitempty"`
	RequestedAt      time.Time  `json:"requestedAt"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	RejectedAt       *time.Time `json:"rejectedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	AuditFields
}
