package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
)

var (
	ErrNegativeRate      = errors.New("commission rate must be between 0 and 100")
	ErrNegativeThreshold = errors.New("auto payout threshold must not be negative")
)

// settingsService manages per-organization settlement configuration.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings retrieves the organization's settings, falling back to the
// compiled-in defaults when the organization never customized them.
func (s *settingsService) GetSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultOrgSettings(organizationID)
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to find org settings", slog.String("organization_id", organizationID))
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies a partial update on top of the current settings and
// persists the result. Omitted fields keep their current value.
func (s *settingsService) UpdateSettings(ctx context.Context, organizationID string, req dto.UpdateSettingsRequest, updaterUserID string) (*domain.OrgSettings, error) {
	current, err := s.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.RetailCommissionRate != nil {
		updated.RetailCommissionRate = *req.RetailCommissionRate
	}
	if req.ReferralCommissionRate != nil {
		updated.ReferralCommissionRate = *req.ReferralCommissionRate
	}
	if req.ManagementFeePercent != nil {
		updated.ManagementFeePercent = *req.ManagementFeePercent
	}
	if req.AutoPayoutThreshold != nil {
		updated.AutoPayoutThreshold = *req.AutoPayoutThreshold
	}
	if req.AutoPayoutEnabled != nil {
		updated.AutoPayoutEnabled = *req.AutoPayoutEnabled
	}

	if err := validateSettings(&updated); err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
	}

	now := time.Now()
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = now
		updated.CreatedBy = updaterUserID
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID

	if err := s.settingsRepo.UpsertSettings(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to upsert org settings", slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Org settings updated",
		slog.String("organization_id", organizationID),
		slog.String("updated_by", updaterUserID))
	return &updated, nil
}

func validateSettings(settings *domain.OrgSettings) error {
	rates := []decimal.Decimal{
		settings.RetailCommissionRate,
		settings.ReferralCommissionRate,
		settings.ManagementFeePercent,
	}
	for _, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return ErrNegativeRate
		}
	}
	if settings.AutoPayoutThreshold.IsNegative() {
		return ErrNegativeThreshold
	}
	return nil
}
