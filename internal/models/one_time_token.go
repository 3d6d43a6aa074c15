package models

import "time"

// EmailVerification is a row of the email_verifications table.
type EmailVerification struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	RequestedEmail string    `db:"requested_email"`
	HashedToken    string    `db:"hashed_token"`
	ExpiresAt      time.Time `db:"expires_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// PasswordReset is a row of the password_resets table, unique on email.
type PasswordReset struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	HashedToken string    `db:"hashed_token"`
	ExpiresAt   time.Time `db:"expires_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// OAuthLink is a row of the oauth_links table.
type OAuthLink struct {
	ProviderID     string    `db:"provider_id"`
	ProviderUserID string    `db:"provider_user_id"`
	UserID         string    `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
}
