package mapping

import (
	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToModelCommissionEntry converts a domain CommissionEntry to a model CommissionEntry
func ToModelCommissionEntry(d domain.CommissionEntry) models.CommissionEntry {
	return models.CommissionEntry{
		EntryID:          d.EntryID,
		OrganizationID:   d.OrganizationID,
		AgentID:          d.AgentID,
		AgentType:        string(d.AgentType),
		PropertyID:       d.PropertyID,
		BookingID:        d.BookingID,
		BaseAmount:       d.BaseAmount,
		CommissionRate:   d.CommissionRate,
		CommissionAmount: d.CommissionAmount,
		Currency:         d.Currency,
		Status:           string(d.Status),
		ReferenceNumber:  d.ReferenceNumber,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommissionEntry converts a model CommissionEntry to a domain CommissionEntry
func ToDomainCommissionEntry(m models.CommissionEntry) domain.CommissionEntry {
	return domain.CommissionEntry{
		EntryID:          m.EntryID,
		OrganizationID:   m.OrganizationID,
		AgentID:          m.AgentID,
		AgentType:        domain.AgentType(m.AgentType),
		PropertyID:       m.PropertyID,
		BookingID:        m.BookingID,
		BaseAmount:       m.BaseAmount,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		Currency:         m.Currency,
		Status:           domain.CommissionStatus(m.Status),
		ReferenceNumber:  m.ReferenceNumber,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCommissionEntrySlice converts a slice of model entries to domain entries
func ToDomainCommissionEntrySlice(ms []models.CommissionEntry) []domain.CommissionEntry {
	ds := make([]domain.CommissionEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCommissionEntry(m)
	}
	return ds
}
