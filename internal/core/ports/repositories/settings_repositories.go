package repositories

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// SettingsReader defines read operations for organization settlement settings
type SettingsReader interface {
	// FindSettings retrieves the settings row for an organization.
	// Returns apperrors.ErrNotFound when the organization never customized them.
	FindSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error)
}

// SettingsWriter defines write operations for organization settlement settings
type SettingsWriter interface {
	// UpsertSettings creates or replaces the organization's settings row.
	UpsertSettings(ctx context.Context, settings domain.OrgSettings) error
}

// SettingsRepositoryFacade combines all settings repository interfaces.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
