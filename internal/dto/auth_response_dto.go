package dto

import (
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User                  UserResponse `json:"user"`
	AccessToken           string       `json:"accessToken"`
	AccessTokenExpiresAt  time.Time    `json:"accessTokenExpiresAt"`
	RefreshToken          string       `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// StatusResponse is returned by endpoints without a payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// LoginURLResponse carries the provider URL and the CSRF state bound to it.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

func ToLoginResponse(result *domain.AuthResult) LoginResponse {
	return LoginResponse{
		User:                  ToUserResponse(result.User),
		AccessToken:           result.Tokens.AccessToken,
		AccessTokenExpiresAt:  result.Tokens.AccessTokenExpiresAt,
		RefreshToken:          result.Tokens.RefreshToken,
		RefreshTokenExpiresAt: result.Tokens.RefreshTokenExpiresAt,
	}
}

func ToRefreshTokenResponse(pair *domain.TokenPair) RefreshTokenResponse {
	return RefreshTokenResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}
