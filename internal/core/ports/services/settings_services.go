package services

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/dto"
)

// SettingsReaderSvc defines read operations for organization settings
type SettingsReaderSvc interface {
	// GetSettings retrieves the organization's settlement settings,
	// falling back to defaults when none are stored.
	GetSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error)
}

// SettingsWriterSvc defines write operations for organization settings
type SettingsWriterSvc interface {
	// UpdateSettings upserts the organization's settlement settings.
	UpdateSettings(ctx context.Context, organizationID string, req dto.UpdateSettingsRequest, updaterUserID string) (*domain.OrgSettings, error)
}

// SettingsSvcFacade combines all settings-related service interfaces
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
