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

type PgxPasswordResetRepository struct {
	BaseRepository
}

var _ portsrepo.PasswordResetRepository = (*PgxPasswordResetRepository)(nil)

// UpsertPasswordReset keeps one row per email; a newer request replaces the
// code, its id and its expiry.
func (r *PgxPasswordResetRepository) UpsertPasswordReset(ctx context.Context, record *domain.PasswordReset) error {
	query := `
        INSERT INTO password_resets (id, email, hashed_token, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE SET
            id = EXCLUDED.id,
            hashed_token = EXCLUDED.hashed_token,
            expires_at = EXCLUDED.expires_at,
            updated_at = now()
        RETURNING created_at, updated_at;
    `
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.Email,
		record.HashedToken,
		record.ExpiresAt,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert password reset: %w", err)
	}
	return nil
}

func (r *PgxPasswordResetRepository) FindValidPasswordReset(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error) {
	query := `
        SELECT id, email, hashed_token, expires_at, created_at, updated_at
        FROM password_resets
        WHERE email = $1 AND expires_at > $2
        FOR UPDATE;
    `
	var m models.PasswordReset
	err := r.db.QueryRow(ctx, query, email, now).
		Scan(&m.ID, &m.Email, &m.HashedToken, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find password reset: %w", err)
	}
	record := mapping.ToDomainPasswordReset(m)
	return &record, nil
}

func (r *PgxPasswordResetRepository) DeletePasswordReset(ctx context.Context, id string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE id = $1;`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete password reset %s: %w", id, err)
	}
	return cmdTag.RowsAffected(), nil
}
