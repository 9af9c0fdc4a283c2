package mapping

import (
	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToModelNotification converts a domain Notification to its model form
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		OrganizationID: d.OrganizationID,
		Title:          d.Title,
		Message:        d.Message,
		Type:           string(d.Type),
		RecipientRole:  string(d.RecipientRole),
		Severity:       string(d.Severity),
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to its domain form
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		OrganizationID: m.OrganizationID,
		Title:          m.Title,
		Message:        m.Message,
		Type:           domain.NotificationType(m.Type),
		RecipientRole:  domain.UserRole(m.RecipientRole),
		Severity:       domain.NotificationSeverity(m.Severity),
		CreatedAt:      m.CreatedAt,
	}
}
