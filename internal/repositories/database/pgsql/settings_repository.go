package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	"github.com/propstay/settlement_backend/internal/models"
	"github.com/propstay/settlement_backend/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

const settingsColumns = `organization_id, retail_commission_rate, referral_commission_rate, management_fee_percent, auto_payout_threshold, auto_payout_enabled, currency, created_at, created_by, last_updated_at, last_updated_by`

// FindSettings retrieves the settings row for an organization.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM organization_settings
		WHERE organization_id = $1;
	`
	var m models.OrgSettings
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.RetailCommissionRate,
		&m.ReferralCommissionRate,
		&m.ManagementFeePercent,
		&m.AutoPayoutThreshold,
		&m.AutoPayoutEnabled,
		&m.Currency,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for organization %s: %w", organizationID, err)
	}
	settings := mapping.ToDomainOrgSettings(m)
	return &settings, nil
}

// UpsertSettings creates or replaces the organization's settings row.
func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, settings domain.OrgSettings) error {
	m := mapping.ToModelOrgSettings(settings)

	query := `
		INSERT INTO organization_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (organization_id) DO UPDATE SET
			retail_commission_rate   = EXCLUDED.retail_commission_rate,
			referral_commission_rate = EXCLUDED.referral_commission_rate,
			management_fee_percent   = EXCLUDED.management_fee_percent,
			auto_payout_threshold    = EXCLUDED.auto_payout_threshold,
			auto_payout_enabled      = EXCLUDED.auto_payout_enabled,
			currency                 = EXCLUDED.currency,
			last_updated_at          = EXCLUDED.last_updated_at,
			last_updated_by          = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.RetailCommissionRate,
		m.ReferralCommissionRate,
		m.ManagementFeePercent,
		m.AutoPayoutThreshold,
		m.AutoPayoutEnabled,
		m.Currency,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings for organization %s: %w", settings.OrganizationID, err)
	}
	return nil
}
