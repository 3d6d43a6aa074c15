package mapping

import (
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	"github.com/SscSPs/taskmgr_backend/internal/models"
)

func ToDomainEmailVerification(m models.EmailVerification) domain.EmailVerification {
	return domain.EmailVerification{
		ID:             m.ID,
		UserID:         m.UserID,
		RequestedEmail: m.RequestedEmail,
		HashedToken:    m.HashedToken,
		ExpiresAt:      m.ExpiresAt,
		Timestamps:     ToDomainTimestamps(m.CreatedAt, m.UpdatedAt),
	}
}

func ToDomainPasswordReset(m models.PasswordReset) domain.PasswordReset {
	return domain.PasswordReset{
		ID:          m.ID,
		Email:       m.Email,
		HashedToken: m.HashedToken,
		ExpiresAt:   m.ExpiresAt,
		Timestamps:  ToDomainTimestamps(m.CreatedAt, m.UpdatedAt),
	}
}

func ToDomainOAuthLink(m models.OAuthLink) domain.OAuthLink {
	return domain.OAuthLink{
		ProviderID:     m.ProviderID,
		ProviderUserID: m.ProviderUserID,
		UserID:         m.UserID,
	}
}
