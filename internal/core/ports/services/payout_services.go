package services

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/dto"
)

// PayoutReaderSvc defines read operations for payout requests
type PayoutReaderSvc interface {
	// GetPayoutByID retrieves a specific payout request by its ID.
	GetPayoutByID(ctx context.Context, organizationID string, payoutID string) (*domain.PayoutRequest, error)

	// ListPayouts retrieves a paginated list of payout requests.
	ListPayouts(ctx context.Context, organizationID string, params dto.ListPayoutsParams) (*dto.ListPayoutsResponse, error)
}

// PayoutWriterSvc defines the payout lifecycle operations
type PayoutWriterSvc interface {
	// CreatePayout creates a new payout request against the beneficiary's
	// available balance.
	CreatePayout(ctx context.Context, organizationID string, req dto.CreatePayoutRequest, requesterUserID string) (*domain.PayoutRequest, error)

	// ApprovePayout moves a pending payout to approved after re-checking
	// the beneficiary's balance.
	ApprovePayout(ctx context.Context, organizationID string, payoutID string, approverUserID string) (*domain.PayoutRequest, error)

	// RejectPayout moves a pending payout to rejected.
	RejectPayout(ctx context.Context, organizationID string, payoutID string, req dto.RejectPayoutRequest, approverUserID string) (*domain.PayoutRequest, error)

	// MarkPayoutPaid records the money movement and debits the beneficiary.
	MarkPayoutPaid(ctx context.Context, organizationID string, payoutID string, req dto.MarkPaidRequest, actorUserID string) (*domain.PayoutRequest, error)

	// UploadReceipt attaches a transfer receipt to a paid payout.
	UploadReceipt(ctx context.Context, organizationID string, payoutID string, req dto.UploadReceiptRequest, actorUserID string) (*domain.PayoutRequest, error)

	// ConfirmReceived completes a paid payout on the beneficiary's confirmation.
	ConfirmReceived(ctx context.Context, organizationID string, payoutID string, beneficiaryUserID string) (*domain.PayoutRequest, error)

	// CancelPayout cancels a pending payout. Only the original requester or
	// an admin may cancel.
	CancelPayout(ctx context.Context, organizationID string, payoutID string, requestingUserID string) (*domain.PayoutRequest, error)
}

// PayoutSvcFacade combines all payout-related service interfaces
type PayoutSvcFacade interface {
	PayoutReaderSvc
	PayoutWriterSvc
}
