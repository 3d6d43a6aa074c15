package repositories

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
// Lookups return (nil, nil) when no user matches.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByEmail matches case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateUser persists a new user and fills in its generated fields.
	CreateUser(ctx context.Context, user *domain.User) error
	// UpdateUser applies the non-nil fields of update and returns the stored user.
	UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error)
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser hard-deletes the user; dependent rows cascade.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
