package domain

import "time"

// NotificationType classifies outbound alerts.
type NotificationType string

const (
	NotificationPayoutRequest NotificationType = "payout_request"
)

// NotificationSeverity indicates how urgently a notification should surface.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
)

// Notification is an alert delivered to admins or requesters. Delivery is
// best-effort: a failed notification never rolls back the settlement state
// that produced it.
type Notification struct {
	NotificationID string               `json:"notificationID"`
	OrganizationID string               `json:"organizationID"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Type           NotificationType     `json:"type"`
	RecipientRole  UserRole             `json:"recipientRole"`
	Severity       NotificationSeverity `json:"severity"`
	CreatedAt      time.Time            `json:"createdAt"`
}
