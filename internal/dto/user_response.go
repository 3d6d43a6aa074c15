package dto

import (
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

type UserResponse struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUserResponse omits private fields when one user looks up another.
type PublicUserResponse struct {
	UserID   string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		Verified:  user.Verified,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

func ToPublicUserResponse(user *domain.User) PublicUserResponse {
	return PublicUserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}
