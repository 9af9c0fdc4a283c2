package mapping

import (
	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToModelAgentBalance converts a domain AgentBalance to a model AgentBalance
func ToModelAgentBalance(d domain.AgentBalance) models.AgentBalance {
	return models.AgentBalance{
		AgentID:            d.AgentID,
		OrganizationID:     d.OrganizationID,
		AgentType:          string(d.AgentType),
		TotalEarned:        d.TotalEarned,
		TotalPaid:          d.TotalPaid,
		CurrentBalance:     d.CurrentBalance,
		PendingCommissions: d.PendingCommissions,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAgentBalance converts a model AgentBalance to a domain AgentBalance
func ToDomainAgentBalance(m models.AgentBalance) domain.AgentBalance {
	return domain.AgentBalance{
		AgentID:            m.AgentID,
		OrganizationID:     m.OrganizationID,
		AgentType:          domain.AgentType(m.AgentType),
		TotalEarned:        m.TotalEarned,
		TotalPaid:          m.TotalPaid,
		CurrentBalance:     m.CurrentBalance,
		PendingCommissions: m.PendingCommissions,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAgentBalanceSlice converts a slice of model balances to domain balances
func ToDomainAgentBalanceSlice(ms []models.AgentBalance) []domain.AgentBalance {
	ds := make([]domain.AgentBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAgentBalance(m)
	}
	return ds
}
