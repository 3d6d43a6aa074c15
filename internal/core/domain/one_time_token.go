package domain

import "time"

// IssuedToken is a freshly generated one-time token. Token is the plaintext and must
// only ever leave the process through the out-of-band channel (email); only
// HashedToken is persisted.
type IssuedToken struct {
	Token       string
	HashedToken string
	ExpiresAt   time.Time
}

// EmailVerification is a pending confirmation binding a user to RequestedEmail.
type EmailVerification struct {
	ID             string
	UserID         string
	RequestedEmail string
	HashedToken    string
	ExpiresAt      time.Time
	Timestamps
}

func (e *EmailVerification) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// PasswordReset is the single outstanding reset code for an email address.
type PasswordReset struct {
	ID          string
	Email       string
	HashedToken string
	ExpiresAt   time.Time
	Timestamps
}

func (p *PasswordReset) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
