package domain

import "time"

// Session is the server-side record of one refresh-token grant. A user may hold many.
type Session struct {
	SessionID string    `json:"id"`
	Token     string    `json:"-"` // refresh token fingerprint
	UserID    string    `json:"userID"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the session is no longer usable at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TokenPair is the access/refresh pair handed to a client after authentication.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// AuthResult is returned by every successful login.
type AuthResult struct {
	User   *User
	Tokens TokenPair
}
