package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// PasswordResetRepository persists reset codes, at most one per email address.
type PasswordResetRepository interface {
	// UpsertPasswordReset replaces any existing record for record.Email.
	UpsertPasswordReset(ctx context.Context, record *domain.PasswordReset) error

	// FindValidPasswordReset returns the record for email if it has not expired at now.
	FindValidPasswordReset(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error)

	DeletePasswordReset(ctx context.Context, id string) (int64, error)
}
