package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// ListPayoutsFilter narrows a payout listing.
type ListPayoutsFilter struct {
	BeneficiaryID *string
	Status        *domain.PayoutStatus
	PayoutType    *domain.PayoutType
}

// PayoutReader defines read operations for payout requests
type PayoutReader interface {
	// FindPayoutByID retrieves a payout request by its ID.
	FindPayoutByID(ctx context.Context, payoutID string) (*domain.PayoutRequest, error)

	// ListPayouts retrieves a paginated, filtered list of an organization's payouts.
	ListPayouts(ctx context.Context, organizationID string, filter ListPayoutsFilter, limit, offset int) ([]domain.PayoutRequest, error)

	// SumOpenPayouts returns the total requested amount of the beneficiary's
	// pending and approved requests, excluding excludePayoutID when non-empty.
	SumOpenPayouts(ctx context.Context, organizationID, beneficiaryID string, excludePayoutID string) (decimal.Decimal, error)

	// SumPayoutsByStatus returns the total requested amount of the
	// beneficiary's requests in any of the given statuses.
	SumPayoutsByStatus(ctx context.Context, organizationID, beneficiaryID string, statuses []domain.PayoutStatus) (decimal.Decimal, error)
}

// PayoutWriter defines the lifecycle mutations of a payout request. Each
// transition is guarded by the request's expected prior status at the storage
// layer; a request in any other state yields apperrors.ErrConflict. Approve,
// MarkPaid and Complete run in their own database transaction because they
// combine the status flip with balance reads or mutations that must not be
// torn apart by a crash or a concurrent request.
type PayoutWriter interface {
	// CreatePayout persists a new pending request. Returns
	// apperrors.ErrDuplicate when an open auto payout already exists for the
	// beneficiary and the new request is also an auto payout.
	CreatePayout(ctx context.Context, payout domain.PayoutRequest) error

	// Approve re-validates the requested amount against the live balance under
	// a row lock, then moves pending -> approved. On an insufficient balance
	// the request stays pending and apperrors.ErrInsufficientBalance is returned.
	Approve(ctx context.Context, payoutID, approvedBy, notes string, now time.Time) (*domain.PayoutRequest, error)

	// Reject moves pending -> rejected. No ledger effect.
	Reject(ctx context.Context, payoutID, rejectedBy, notes string, now time.Time) (*domain.PayoutRequest, error)

	// Cancel moves pending|approved -> cancelled. No ledger effect.
	Cancel(ctx context.Context, payoutID, cancelledBy string, now time.Time) (*domain.PayoutRequest, error)

	// MarkPaid moves approved -> paid and, for agent payouts, applies the
	// balance debit in the same transaction. Either both happen or neither.
	MarkPaid(ctx context.Context, payoutID, paymentMethod, paymentReference, actorID string, now time.Time) (*domain.PayoutRequest, *domain.AgentBalance, error)

	// AttachReceipt stores the receipt URL on a paid request. No state change.
	AttachReceipt(ctx context.Context, payoutID, receiptURL, actorID string, now time.Time) (*domain.PayoutRequest, error)

	// Complete moves paid -> completed and, for agent payouts, settles the
	// funding commission entries in the same transaction.
	Complete(ctx context.Context, payoutID, confirmedBy string, now time.Time) (*domain.PayoutRequest, error)
}

// PayoutRepositoryFacade combines all payout repository interfaces.
type PayoutRepositoryFacade interface {
	PayoutReader
	PayoutWriter
}
