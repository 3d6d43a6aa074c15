package services

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/dto"
)

// PasswordResetSvc runs the forgot-password flow.
type PasswordResetSvc interface {
	RequestReset(ctx context.Context, email string) error
	// ValidateToken is read-only; it never consumes the code.
	ValidateToken(ctx context.Context, token, email string) error
	// ResetPassword returns the id of the user whose password was replaced.
	ResetPassword(ctx context.Context, token string, req dto.ResetPasswordRequest) (string, error)
}
