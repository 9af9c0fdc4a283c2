package repositories

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	// SaveNotification persists a notification record.
	SaveNotification(ctx context.Context, notification domain.Notification) error
}

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	// ListNotifications retrieves a paginated list of an organization's notifications.
	ListNotifications(ctx context.Context, organizationID string, limit, offset int) ([]domain.Notification, error)
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
