package dto

import (
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// UpdateSettingsRequest defines the input for updating org settlement settings.
// Omitted fields keep their current value.
type UpdateSettingsRequest struct {
	RetailCommissionRate   *decimal.Decimal `json:"retailCommissionRate,omitempty"`
	ReferralCommissionRate *decimal.Decimal `json:"referralCommissionRate,omitempty"`
	ManagementFeePercent   *decimal.Decimal `json:"managementFeePercent,omitempty"`
	AutoPayoutThreshold    *decimal.Decimal `json:"autoPayoutThreshold,omitempty"`
	AutoPayoutEnabled      *bool            `json:"autoPayoutEnabled,omitempty"`
}

// SettingsResponse defines the org settlement settings response.
type SettingsResponse struct {
	OrganizationID         string          `json:"organizationID"`
	RetailCommissionRate   decimal.Decimal `json:"retailCommissionRate"`
	ReferralCommissionRate decimal.Decimal `json:"referralCommissionRate"`
	ManagementFeePercent   decimal.Decimal `json:"managementFeePercent"`
	AutoPayoutThreshold    decimal.Decimal `json:"autoPayoutThreshold"`
	AutoPayoutEnabled      bool            `json:"autoPayoutEnabled"`
	Currency               string          `json:"currency"`
}

// ToSettingsResponse converts domain.OrgSettings to its DTO.
func ToSettingsResponse(s *domain.OrgSettings) SettingsResponse {
	return SettingsResponse{
		OrganizationID:         s.OrganizationID,
		RetailCommissionRate:   s.RetailCommissionRate,
		ReferralCommissionRate: s.ReferralCommissionRate,
		ManagementFeePercent:   s.ManagementFeePercent,
		AutoPayoutThreshold:    s.AutoPayoutThreshold,
		AutoPayoutEnabled:      s.AutoPayoutEnabled,
		Currency:               s.Currency,
	}
}
