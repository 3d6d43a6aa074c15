package models

import "time"

// Session is a row of the sessions table. Only the SHA-256 fingerprint of the
// refresh token is stored.
type Session struct {
	SessionID string    `db:"session_id"`
	TokenHash string    `db:"token_hash"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
