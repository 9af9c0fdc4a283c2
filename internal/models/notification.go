package models

import "time"

// Notification is the database shape of one stored alert.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	OrganizationID string    `db:"organization_id"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Type           string    `db:"type"`
	RecipientRole  string    `db:"recipient_role"`
	Severity       string    `db:"severity"`
	CreatedAt      time.Time `db:"created_at"`
}
