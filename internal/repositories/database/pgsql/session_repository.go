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

// PgxSessionRepository stores sessions keyed by token_hash. Callers pass the
// refresh token fingerprint (utils.HashRefreshToken), never the token itself.
type PgxSessionRepository struct {
	BaseRepository
}

var _ portsrepo.SessionRepository = (*PgxSessionRepository)(nil)

func (r *PgxSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	m := mapping.ToModelSession(*session)
	query := `
        INSERT INTO sessions (session_id, token_hash, user_id, expires_at)
        VALUES ($1, $2, $3, $4);
    `
	if _, err := r.db.Exec(ctx, query, m.SessionID, m.TokenHash, m.UserID, m.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session for user %s: %w", session.UserID, err)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
        SELECT session_id, token_hash, user_id, expires_at, created_at
        FROM sessions
        WHERE token_hash = $1
        FOR UPDATE;
    `
	var m models.Session
	err := r.db.QueryRow(ctx, query, token).
		Scan(&m.SessionID, &m.TokenHash, &m.UserID, &m.ExpiresAt, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	session := mapping.ToDomainSession(m)
	return &session, nil
}

func (r *PgxSessionRepository) DeleteSession(ctx context.Context, token string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1;`, token)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSessionRepository) DeleteAllSessionsForUser(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions for user %s: %w", userID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1;`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
