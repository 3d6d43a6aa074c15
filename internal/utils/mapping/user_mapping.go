package mapping

import (
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	"github.com/SscSPs/taskmgr_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Verified:     d.Verified,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:     m.UserID,
		Username:   m.Username,
		Email:      m.Email,
		Password:   m.PasswordHash,
		Verified:   m.Verified,
		Avatar:     m.Avatar,
		Timestamps: ToDomainTimestamps(m.CreatedAt, m.UpdatedAt),
	}
}
