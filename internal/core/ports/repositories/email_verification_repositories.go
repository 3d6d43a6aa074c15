package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// EmailVerificationRepository persists pending email confirmations.
type EmailVerificationRepository interface {
	CreateEmailVerification(ctx context.Context, record *domain.EmailVerification) error

	// FindValidEmailVerification returns the most recent record for the user that has
	// not expired at now, or (nil, nil). Inside a transaction the row is locked.
	FindValidEmailVerification(ctx context.Context, userID string, now time.Time) (*domain.EmailVerification, error)

	DeleteEmailVerification(ctx context.Context, id string) (int64, error)
}
