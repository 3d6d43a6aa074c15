package services

import (
	"context"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade mints and verifies the signed access/refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error)
	// VerifyAccessToken checks signature and expiry only and returns the subject.
	VerifyAccessToken(ctx context.Context, token string) (string, error)
	// VerifyRefreshToken checks signature and expiry only; callers must still
	// confirm the server-side session exists.
	VerifyRefreshToken(ctx context.Context, token string) (string, error)
}

// AuthSvcFacade is the root of the session lifecycle.
type AuthSvcFacade interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginWithOAuth(ctx context.Context, data domain.OAuthData) (*domain.AuthResult, error)
	// Refresh rotates a refresh token. The presented token is unusable afterwards.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// Logout revokes a single session.
	Logout(ctx context.Context, refreshToken string) error
	// LogoutAll revokes every session of the user.
	LogoutAll(ctx context.Context, userID string) error
	// PurgeExpiredSessions deletes sessions whose refresh token can no longer be used.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
	// OAuthDataFromPayload maps a validated ID token to the provider-neutral identity.
	OAuthDataFromPayload(payload *idtoken.Payload) (domain.OAuthData, error)
}
