package domain

// User represents an account holder in the domain.
type User struct {
	UserID   string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"` // empty for provider identities without an address
	Password string  `json:"-"` // scrypt digest, empty for OAuth-only accounts
	Verified bool    `json:"verified"`
	Avatar   *string `json:"avatar,omitempty"`
	Timestamps
}

// HasPassword reports whether the user can log in with a password at all.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// UserUpdate carries the mutable columns of a user. Nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Verified *bool
	Avatar   *string
}
