package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	"github.com/propstay/settlement_backend/internal/models"
	"github.com/propstay/settlement_backend/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, organization_id, title, message, type, recipient_role, severity, created_at`

// SaveNotification persists a notification record.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID, m.OrganizationID, m.Title, m.Message,
		m.Type, m.RecipientRole, m.Severity, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListNotifications retrieves a paginated list of an organization's
// notifications, newest first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, organizationID string, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE organization_id = $1
		ORDER BY created_at DESC, notification_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.OrganizationID,
			&m.Title,
			&m.Message,
			&m.Type,
			&m.RecipientRole,
			&m.Severity,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}
