package services

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	// RequestEmailChange sends a verification link to the new address; the
	// account keeps its current email until that link is used.
	RequestEmailChange(ctx context.Context, userID string, newEmail string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
