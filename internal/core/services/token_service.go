package services

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT access and refresh tokens.
// Access and refresh tokens are signed with different secrets so one can never be
// presented as the other.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, opts ...Option) portssvc.TokenSvcFacade {
	return &tokenService{
		BaseService: newBaseService(opts...),
		cfg:         cfg,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(userID, s.cfg.AccessTokenSecret, s.Now(), s.cfg.AccessTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(userID, s.cfg.RefreshTokenSecret, s.Now(), s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.AccessTokenSecret, s.cfg.JWTIssuer, s.now)
	if err != nil {
		return "", fmt.Errorf("invalid access token: %w", err)
	}
	return claims.Subject, nil
}

func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer, s.now)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}
	return claims.Subject, nil
}
