package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole is the role of a platform user within an organization.
type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleOwner         UserRole = "owner"
	RoleRetailAgent   UserRole = "retail-agent"
	RoleReferralAgent UserRole = "referral-agent"
)

// AgentRole reports whether the role earns commissions.
func (r UserRole) AgentRole() bool {
	return r == RoleRetailAgent || r == RoleReferralAgent
}

// User represents a platform user. CommissionRate, when set, overrides the
// organization-level rate for that agent.
type User struct {
	UserID         string           `json:"userID"`
	OrganizationID string           `json:"organizationID"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           UserRole         `json:"role"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
	PasswordHash   string           `json:"-"`
	IsActive       bool             `json:"isActive"`
	BankDetails    *BankDetails     `json:"bankDetails,omitempty"`

	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
