package mapping

import (
	"database/sql"
	"time"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func stringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// ToModelPayoutRequest converts a domain PayoutRequest to a model PayoutRequest
func ToModelPayoutRequest(d domain.PayoutRequest) models.PayoutRequest {
	return models.PayoutRequest{
		PayoutID:           d.PayoutID,
		OrganizationID:     d.OrganizationID,
		BeneficiaryID:      d.BeneficiaryID,
		BeneficiaryKind:    string(d.BeneficiaryKind),
		RequestedAmount:    d.RequestedAmount,
		AvailableAtRequest: d.AvailableAtRequest,
		PayoutType:         string(d.PayoutType),
		Status:             string(d.Status),
		Currency:           d.Currency,
		BankName:           nullString(d.BankName),
		AccountNumber:      nullString(d.AccountNumber),
		AccountHolder:      nullString(d.AccountHolder),
		RequestedBy:        d.RequestedBy,
		Notes:              nullString(d.Notes),
		ApprovedBy:         nullString(d.ApprovedBy),
		ApprovalNotes:      nullString(d.ApprovalNotes),
		PaymentMethod:      nullString(d.PaymentMethod),
		PaymentReference:   nullString(d.PaymentReference),
		ReceiptURL:         nullString(d.ReceiptURL),
		ConfirmedBy:        nullString(d.ConfirmedBy),
		RequestedAt:        d.RequestedAt,
		ApprovedAt:         nullTime(d.ApprovedAt),
		PaidAt:             nullTime(d.PaidAt),
		CompletedAt:        nullTime(d.CompletedAt),
		RejectedAt:         nullTime(d.RejectedAt),
		CancelledAt:        nullTime(d.CancelledAt),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayoutRequest converts a model PayoutRequest to a domain PayoutRequest
func ToDomainPayoutRequest(m models.PayoutRequest) domain.PayoutRequest {
	return domain.PayoutRequest{
		PayoutID:           m.PayoutID,
		OrganizationID:     m.OrganizationID,
		BeneficiaryID:      m.BeneficiaryID,
		BeneficiaryKind:    domain.BeneficiaryKind(m.BeneficiaryKind),
		RequestedAmount:    m.RequestedAmount,
		AvailableAtRequest: m.AvailableAtRequest,
		PayoutType:         domain.PayoutType(m.PayoutType),
		Status:             domain.PayoutStatus(m.Status),
		Currency:           m.Currency,
		BankDetails: domain.BankDetails{
			BankName:      stringOrEmpty(m.BankName),
			AccountNumber: stringOrEmpty(m.AccountNumber),
			AccountHolder: stringOrEmpty(m.AccountHolder),
		},
		RequestedBy:      m.RequestedBy,
		Notes:            stringOrEmpty(m.Notes),
		ApprovedBy:       stringOrEmpty(m.ApprovedBy),
		ApprovalNotes:    stringOrEmpty(m.ApprovalNotes),
		PaymentMethod:    stringOrEmpty(m.PaymentMethod),
		PaymentReference: stringOrEmpty(m.PaymentReference),
		ReceiptURL:       stringOrEmpty(m.ReceiptURL),
		ConfirmedBy:      stringOrEmpty(m.ConfirmedBy),
		RequestedAt:      m.RequestedAt,
		ApprovedAt:       timePtr(m.ApprovedAt),
		PaidAt:           timePtr(m.PaidAt),
		CompletedAt:      timePtr(m.CompletedAt),
		RejectedAt:       timePtr(m.RejectedAt),
		CancelledAt:      timePtr(m.CancelledAt),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayoutRequestSlice converts a slice of model payout requests
func ToDomainPayoutRequestSlice(ms []models.PayoutRequest) []domain.PayoutRequest {
	ds := make([]domain.PayoutRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayoutRequest(m)
	}
	return ds
}
