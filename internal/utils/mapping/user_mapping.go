package mapping

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Email:          d.Email,
		Role:           string(d.Role),
		PasswordHash:   d.PasswordHash,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
	if d.CommissionRate != nil {
		m.CommissionRate = decimal.NullDecimal{Decimal: *d.CommissionRate, Valid: true}
	}
	if d.BankDetails != nil {
		m.BankName = nullString(d.BankDetails.BankName)
		m.AccountNumber = nullString(d.BankDetails.AccountNumber)
		m.AccountHolder = nullString(d.BankDetails.AccountHolder)
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Email:          m.Email,
		Role:           domain.UserRole(m.Role),
		PasswordHash:   m.PasswordHash,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}
	if m.CommissionRate.Valid {
		rate := m.CommissionRate.Decimal
		d.CommissionRate = &rate
	}
	if m.BankName.Valid || m.AccountNumber.Valid || m.AccountHolder.Valid {
		d.BankDetails = &domain.BankDetails{
			BankName:      stringOrEmpty(m.BankName),
			AccountNumber: stringOrEmpty(m.AccountNumber),
			AccountHolder: stringOrEmpty(m.AccountHolder),
		}
	}
	if m.RefreshTokenHash.Valid {
		hash := m.RefreshTokenHash.String
		d.RefreshTokenHash = &hash
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
