package services

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// NotificationSvcFacade defines the best-effort notification sink.
// Implementations must never return an error to the caller's business flow;
// failures are logged and swallowed.
type NotificationSvcFacade interface {
	// NotifyPayoutRequested records a notification that a payout request
	// needs admin attention.
	NotifyPayoutRequested(ctx context.Context, payout *domain.PayoutRequest)

	// NotifyPayoutStatusChanged records a notification for the beneficiary
	// about a payout transition.
	NotifyPayoutStatusChanged(ctx context.Context, payout *domain.PayoutRequest)

	// ListNotifications retrieves recent notifications for a recipient.
	ListNotifications(ctx context.Context, organizationID string, recipientID string, limit, offset int) ([]domain.Notification, error)
}
