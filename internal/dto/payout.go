package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// CreatePayoutRequest defines the input for creating a payout request.
// BeneficiaryID is optional; when omitted the requester is the beneficiary.
type CreatePayoutRequest struct {
	BeneficiaryID *string             `json:"beneficiaryID,omitempty"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	PayoutType    domain.PayoutType   `json:"payoutType" binding:"required,oneof=full partial"`
	BankDetails   *domain.BankDetails `json:"bankDetails,omitempty"`
	Notes         string              `json:"notes,omitempty"`
}

// RejectPayoutRequest defines the input for rejecting a payout request.
type RejectPayoutRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MarkPaidRequest defines the input for recording the money movement. The
// reference is optional; cash payments have none.
type MarkPaidRequest struct {
	PaymentMethod    string `json:"paymentMethod" binding:"required"`
	PaymentReference string `json:"paymentReference,omitempty"`
}

// UploadReceiptRequest defines the input for attaching a transfer receipt.
type UploadReceiptRequest struct {
	ReceiptURL string `json:"receiptURL" binding:"required,url"`
}

// ListPayoutsParams holds filters and pagination for listing payouts.
type ListPayoutsParams struct {
	BeneficiaryID *string `form:"beneficiaryID"`
	Status        *string `form:"status"`
	PayoutType    *string `form:"payoutType"`
	Limit         int     `form:"limit,default=20"`
	Offset        int     `form:"offset,default=0"`
}

// PayoutResponse defines the data returned for a payout request.
type PayoutResponse struct {
	PayoutID           string             `json:"payoutID"`
	BeneficiaryID      string             `json:"beneficiaryID"`
	BeneficiaryKind    string             `json:"beneficiaryKind"`
	RequestedAmount    decimal.Decimal    `json:"requestedAmount"`
	AvailableAtRequest decimal.Decimal    `json:"availableAtRequest"`
	Currency           string             `json:"currency"`
	PayoutType         string             `json:"payoutType"`
	Status             string             `json:"status"`
	RequestedBy        string             `json:"requestedBy"`
	Notes              string             `json:"notes,omitempty"`
	BankDetails        domain.BankDetails `json:"bankDetails"`
	ApprovedBy         string             `json:"approvedBy,omitempty"`
	ApprovalNotes      string             `json:"approvalNotes,omitempty"`
	PaymentMethod      string             `json:"paymentMethod,omitempty"`
	PaymentReference   string             `json:"paymentReference,omitempty"`
	ReceiptURL         string             `json:"receiptURL,omitempty"`
	ConfirmedBy        string             `json:"confirmedBy,omitempty"`
	RequestedAt        time.Time          `json:"requestedAt"`
	ApprovedAt         *time.Time         `json:"approvedAt,omitempty"`
	PaidAt             *time.Time         `json:"paidAt,omitempty"`
	CompletedAt        *time.Time         `json:"completedAt,omitempty"`
	RejectedAt         *time.Time         `json:"rejectedAt,omitempty"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty"`
}

// ListPayoutsResponse defines the paginated payout list response.
type ListPayoutsResponse struct {
	Payouts []PayoutResponse `json:"payouts"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ToPayoutResponse converts a domain.PayoutRequest to its DTO.
func ToPayoutResponse(p *domain.PayoutRequest) PayoutResponse {
	return PayoutResponse{
		PayoutID:           p.PayoutID,
		BeneficiaryID:      p.BeneficiaryID,
		BeneficiaryKind:    string(p.BeneficiaryKind),
		RequestedAmount:    p.RequestedAmount,
		AvailableAtRequest: p.AvailableAtRequest,
		Currency:           p.Currency,
		PayoutType:         string(p.PayoutType),
		Status:             string(p.Status),
		RequestedBy:        p.RequestedBy,
		Notes:              p.Notes,
		BankDetails:        p.BankDetails,
		ApprovedBy:         p.ApprovedBy,
		ApprovalNotes:      p.ApprovalNotes,
		PaymentMethod:      p.PaymentMethod,
		PaymentReference:   p.PaymentReference,
		ReceiptURL:         p.ReceiptURL,
		ConfirmedBy:        p.ConfirmedBy,
		RequestedAt:        p.RequestedAt,
		ApprovedAt:         p.ApprovedAt,
		PaidAt:             p.PaidAt,
		CompletedAt:        p.CompletedAt,
		RejectedAt:         p.RejectedAt,
		CancelledAt:        p.CancelledAt,
	}
}

// ToPayoutResponses converts a slice of domain payout requests.
func ToPayoutResponses(payouts []domain.PayoutRequest) []PayoutResponse {
	responses := make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		responses[i] = ToPayoutResponse(&p)
	}
	return responses
}
