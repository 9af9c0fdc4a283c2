package models

import (
	"github.com/shopspring/decimal"
)

// OrgSettings is the database shape of the per-organization settlement
// configuration row.
type OrgSettings struct {
	OrganizationID         string          `db:"organization_id"`
	RetailCommissionRate   decimal.Decimal `db:"retail_commission_rate"`
	ReferralCommissionRate decimal.Decimal `db:"referral_commission_rate"`
	ManagementFeePercent   decimal.Decimal `db:"management_fee_percent"`
	AutoPayoutThreshold    decimal.Decimal `db:"auto_payout_threshold"`
	AutoPayoutEnabled      bool            `db:"auto_payout_enabled"`
	Currency               string          `db:"currency"`
	AuditFields
}
