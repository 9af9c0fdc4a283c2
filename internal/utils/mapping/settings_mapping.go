package mapping

import (
	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToModelOrgSettings converts domain OrgSettings to the model form
func ToModelOrgSettings(d domain.OrgSettings) models.OrgSettings {
	return models.OrgSettings{
		OrganizationID:         d.OrganizationID,
		RetailCommissionRate:   d.RetailCommissionRate,
		ReferralCommissionRate: d.ReferralCommissionRate,
		ManagementFeePercent:   d.ManagementFeePercent,
		AutoPayoutThreshold:    d.AutoPayoutThreshold,
		AutoPayoutEnabled:      d.AutoPayoutEnabled,
		Currency:               d.Currency,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrgSettings converts model OrgSettings to the domain form
func ToDomainOrgSettings(m models.OrgSettings) domain.OrgSettings {
	return domain.OrgSettings{
		OrganizationID:         m.OrganizationID,
		RetailCommissionRate:   m.RetailCommissionRate,
		ReferralCommissionRate: m.ReferralCommissionRate,
		ManagementFeePercent:   m.ManagementFeePercent,
		AutoPayoutThreshold:    m.AutoPayoutThreshold,
		AutoPayoutEnabled:      m.AutoPayoutEnabled,
		Currency:               m.Currency,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
