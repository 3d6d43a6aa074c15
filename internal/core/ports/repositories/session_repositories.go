package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.Session) error

	// FindSessionByToken returns the session for token, or (nil, nil). Inside a
	// transaction the row is locked until commit.
	FindSessionByToken(ctx context.Context, token string) (*domain.Session, error)

	// DeleteSession removes one session and reports how many rows were removed.
	DeleteSession(ctx context.Context, token string) (int64, error)

	// DeleteAllSessionsForUser revokes every session the user holds.
	DeleteAllSessionsForUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredSessions purges sessions that expired before the given instant.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
