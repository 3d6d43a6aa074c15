package mapping

import (
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	"github.com/SscSPs/taskmgr_backend/internal/models"
)

// ToModelSession converts a domain Session to a sessions row. The domain token
// is already the fingerprint, so it lands in token_hash unchanged.
func ToModelSession(d domain.Session) models.Session {
	return models.Session{
		SessionID: d.SessionID,
		TokenHash: d.Token,
		UserID:    d.UserID,
		ExpiresAt: d.ExpiresAt,
	}
}

func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID: m.SessionID,
		Token:     m.TokenHash,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
	}
}
