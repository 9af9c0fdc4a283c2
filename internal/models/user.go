package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a platform user row. Commission rate and bank details are
// nullable overrides of organization-level configuration.
type User struct {
	UserID         string              `db:"user_id"`
	OrganizationID string              `db:"organization_id"`
	Name           string              `db:"name"`
	Email          string              `db:"email"`
	Role           string              `db:"role"`
	CommissionRate decimal.NullDecimal `db:"commission_rate"`
	PasswordHash   string              `db:"password_hash"`
	IsActive       bool                `db:"is_active"`
	BankName       sql.NullString      `db:"bank_name"`
	AccountNumber  sql.NullString      `db:"account_number"`
	AccountHolder  sql.NullString      `db:"account_holder"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
