package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
)

// notificationService persists admin-facing alerts. It is strictly
// best-effort: a storage failure is logged and swallowed so that the
// settlement flow that produced the alert is never affected.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// NotifyPayoutRequested records an alert for admins that a payout request
// needs review.
func (s *notificationService) NotifyPayoutRequested(ctx context.Context, payout *domain.PayoutRequest) {
	severity := domain.SeverityInfo
	if payout.PayoutType == domain.PayoutAuto {
		severity = domain.SeverityWarning
	}
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		OrganizationID: payout.OrganizationID,
		Title:          "Payout request pending review",
		Message: fmt.Sprintf("%s payout of %s %s requested for %s",
			payout.PayoutType, payout.RequestedAmount.String(), payout.Currency, payout.BeneficiaryID),
		Type:          domain.NotificationPayoutRequest,
		RecipientRole: domain.RoleAdmin,
		Severity:      severity,
		CreatedAt:     time.Now(),
	}
	s.save(ctx, notification)
}

// NotifyPayoutStatusChanged records an alert for the beneficiary about a
// payout transition.
func (s *notificationService) NotifyPayoutStatusChanged(ctx context.Context, payout *domain.PayoutRequest) {
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		OrganizationID: payout.OrganizationID,
		Title:          fmt.Sprintf("Payout %s", payout.Status),
		Message: fmt.Sprintf("Payout of %s %s for %s is now %s",
			payout.RequestedAmount.String(), payout.Currency, payout.BeneficiaryID, payout.Status),
		Type:          domain.NotificationPayoutRequest,
		RecipientRole: roleForKind(payout.BeneficiaryKind),
		Severity:      domain.SeverityInfo,
		CreatedAt:     time.Now(),
	}
	s.save(ctx, notification)
}

func roleForKind(kind domain.BeneficiaryKind) domain.UserRole {
	if kind == domain.BeneficiaryOwner {
		return domain.RoleOwner
	}
	return domain.RoleRetailAgent
}

func (s *notificationService) save(ctx context.Context, notification domain.Notification) {
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.String("notification_id", notification.NotificationID),
			slog.String("type", string(notification.Type)))
	}
}

// ListNotifications retrieves recent notifications for the organization.
func (s *notificationService) ListNotifications(ctx context.Context, organizationID string, recipientID string, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotifications(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}
