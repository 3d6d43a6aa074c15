package services

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// OAuthSvc links provider identities to local accounts.
type OAuthSvc interface {
	// CreateOrRetrieveUser is idempotent for a given (provider, provider user id).
	CreateOrRetrieveUser(ctx context.Context, data domain.OAuthData) (*domain.User, error)
}
