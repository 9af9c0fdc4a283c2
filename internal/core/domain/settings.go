package domain

import (
	"github.com/shopspring/decimal"
)

// Default settlement parameters applied when an organization has no settings row.
var (
	DefaultRetailCommissionRate   = decimal.NewFromInt(10)
	DefaultReferralCommissionRate = decimal.NewFromInt(10)
	DefaultManagementFeePercent   = decimal.NewFromInt(15)
	DefaultAutoPayoutThreshold    = decimal.NewFromInt(1000)
)

// OrgSettings holds the per-organization settlement configuration. Rates are
// percentages (10 means 10%). An agent-level rate override, when present on the
// User, takes precedence over the organization rate.
type OrgSettings struct {
	OrganizationID         string          `json:"organizationID"`
	RetailCommissionRate   decimal.Decimal `json:"retailCommissionRate"`
	ReferralCommissionRate decimal.Decimal `json:"referralCommissionRate"`
	ManagementFeePercent   decimal.Decimal `json:"managementFeePercent"`
	AutoPayoutThreshold    decimal.Decimal `json:"autoPayoutThreshold"`
	AutoPayoutEnabled      bool            `json:"autoPayoutEnabled"`
	Currency               string          `json:"currency"`
	AuditFields
}

// DefaultOrgSettings returns the compiled-in defaults for an organization
// that has never customized its settlement configuration.
func DefaultOrgSettings(organizationID string) OrgSettings {
	return OrgSettings{
		OrganizationID:         organizationID,
		RetailCommissionRate:   DefaultRetailCommissionRate,
		ReferralCommissionRate: DefaultReferralCommissionRate,
		ManagementFeePercent:   DefaultManagementFeePercent,
		AutoPayoutThreshold:    DefaultAutoPayoutThreshold,
		AutoPayoutEnabled:      true,
		Currency:               "USD",
	}
}
