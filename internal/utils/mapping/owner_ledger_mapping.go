package mapping

import (
	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToDomainOwnerLedgerEntry converts a model OwnerLedgerEntry to its domain form
func ToDomainOwnerLedgerEntry(m models.OwnerLedgerEntry) domain.OwnerLedgerEntry {
	return domain.OwnerLedgerEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		OwnerID:        m.OwnerID,
		PropertyID:     m.PropertyID,
		EntryType:      domain.OwnerLedgerEntryType(m.EntryType),
		Amount:         m.Amount,
		Currency:       m.Currency,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOwnerLedgerEntrySlice converts a slice of model ledger entries
func ToDomainOwnerLedgerEntrySlice(ms []models.OwnerLedgerEntry) []domain.OwnerLedgerEntry {
	ds := make([]domain.OwnerLedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOwnerLedgerEntry(m)
	}
	return ds
}
