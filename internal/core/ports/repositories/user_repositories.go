package repositories

import (
	"context"
	"time"

	"github.com/propstay/settlement_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, for credential verification.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByIDs retrieves multiple users by their IDs. IDs with no
	// matching user are simply absent from the returned map.
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)

	// FindUsers retrieves a paginated list of an organization's users.
	FindUsers(ctx context.Context, organizationID string, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
