package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/taskmgr_backend/internal/models"
	"github.com/SscSPs/taskmgr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxEmailVerificationRepository struct {
	BaseRepository
}

var _ portsrepo.EmailVerificationRepository = (*PgxEmailVerificationRepository)(nil)

func (r *PgxEmailVerificationRepository) CreateEmailVerification(ctx context.Context, record *domain.EmailVerification) error {
	query := `
        INSERT INTO email_verifications (id, user_id, requested_email, hashed_token, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at;
    `
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.RequestedEmail,
		record.HashedToken,
		record.ExpiresAt,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create email verification for user %s: %w", record.UserID, err)
	}
	return nil
}

func (r *PgxEmailVerificationRepository) FindValidEmailVerification(ctx context.Context, userID string, now time.Time) (*domain.EmailVerification, error) {
	query := `
        SELECT id, user_id, requested_email, hashed_token, expires_at, created_at, updated_at
        FROM email_verifications
        WHERE user_id = $1 AND expires_at > $2
        ORDER BY created_at DESC
        LIMIT 1
        FOR UPDATE;
    `
	var m models.EmailVerification
	err := r.db.QueryRow(ctx, query, userID, now).
		Scan(&m.ID, &m.UserID, &m.RequestedEmail, &m.HashedToken, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find email verification for user %s: %w", userID, err)
	}
	record := mapping.ToDomainEmailVerification(m)
	return &record, nil
}

func (r *PgxEmailVerificationRepository) DeleteEmailVerification(ctx context.Context, id string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM email_verifications WHERE id = $1;`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete email verification %s: %w", id, err)
	}
	return cmdTag.RowsAffected(), nil
}
