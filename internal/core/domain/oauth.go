package domain

// AuthProvider identifies an external identity provider.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
)

// OAuthLink maps (ProviderID, ProviderUserID) to a local user.
type OAuthLink struct {
	ProviderID     string
	ProviderUserID string
	UserID         string
}

// OAuthData is the identity asserted by a provider after a successful sign-in.
type OAuthData struct {
	ProviderID     string
	ProviderUserID string
	Email          string
	Username       string
	Avatar         *string
}
