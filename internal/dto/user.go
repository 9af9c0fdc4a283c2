package dto

import (
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// CreateUserRequest defines the data required to create a user.
type CreateUserRequest struct {
	OrganizationID string           `json:"organizationID" binding:"required"`
	Name           string           `json:"name" binding:"required"`
	Email          string           `json:"email" binding:"required,email"`
	Password       string           `json:"password" binding:"required,min=8"`
	Role           domain.UserRole  `json:"role" binding:"required,oneof=admin owner retail-agent referral-agent"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name           *string             `json:"name,omitempty"`
	CommissionRate *decimal.Decimal    `json:"commissionRate,omitempty"`
	BankDetails    *domain.BankDetails `json:"bankDetails,omitempty"`
	IsActive       *bool               `json:"isActive,omitempty"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID         string           `json:"userID"`
	OrganizationID string           `json:"organizationID"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           string           `json:"role"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
	IsActive       bool             `json:"isActive"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		OrganizationID: user.OrganizationID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		CommissionRate: user.CommissionRate,
		IsActive:       user.IsActive,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUserResponse(users []domain.User, limit, offset int) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users:  userResponses,
		Limit:  limit,
		Offset: offset,
	}
}
