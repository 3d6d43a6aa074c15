package repositories

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// OAuthRepository persists links between provider identities and local users.
type OAuthRepository interface {
	// CreateOAuthLink is a no-op when the (provider, provider user) pair already exists.
	CreateOAuthLink(ctx context.Context, link domain.OAuthLink) error

	FindOAuthLink(ctx context.Context, providerID, providerUserID string) (*domain.OAuthLink, error)
}
