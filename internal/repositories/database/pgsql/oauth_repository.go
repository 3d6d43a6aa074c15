package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/taskmgr_backend/internal/models"
	"github.com/SscSPs/taskmgr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxOAuthRepository struct {
	BaseRepository
}

var _ portsrepo.OAuthRepository = (*PgxOAuthRepository)(nil)

func (r *PgxOAuthRepository) CreateOAuthLink(ctx context.Context, link domain.OAuthLink) error {
	query := `
        INSERT INTO oauth_links (provider_id, provider_user_id, user_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (provider_id, provider_user_id) DO NOTHING;
    `
	if _, err := r.db.Exec(ctx, query, link.ProviderID, link.ProviderUserID, link.UserID); err != nil {
		return fmt.Errorf("failed to link %s account to user %s: %w", link.ProviderID, link.UserID, err)
	}
	return nil
}

func (r *PgxOAuthRepository) FindOAuthLink(ctx context.Context, providerID, providerUserID string) (*domain.OAuthLink, error) {
	query := `
        SELECT provider_id, provider_user_id, user_id, created_at
        FROM oauth_links
        WHERE provider_id = $1 AND provider_user_id = $2;
    `
	var m models.OAuthLink
	err := r.db.QueryRow(ctx, query, providerID, providerUserID).
		Scan(&m.ProviderID, &m.ProviderUserID, &m.UserID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s link: %w", providerID, err)
	}
	link := mapping.ToDomainOAuthLink(m)
	return &link, nil
}
