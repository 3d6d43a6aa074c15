package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
)

// tokenIssuerService produces one-time tokens whose plaintext leaves the process
// exactly once and whose digest is what gets persisted.
type tokenIssuerService struct {
	BaseService
	hashing portssvc.HashingSvc
}

func NewTokenIssuerService(hashing portssvc.HashingSvc, opts ...Option) portssvc.TokenIssuerSvc {
	return &tokenIssuerService{
		BaseService: newBaseService(opts...),
		hashing:     hashing,
	}
}

func (s *tokenIssuerService) Generate(length int, alphabet portssvc.Alphabet) (string, error) {
	return utils.GenerateFromAlphabet(length, string(alphabet))
}

func (s *tokenIssuerService) GenerateWithExpiryAndHash(ctx context.Context, length int, ttl time.Duration, alphabet portssvc.Alphabet) (*domain.IssuedToken, error) {
	token, err := s.Generate(length, alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	hashed, err := s.hashing.Hash(ctx, token)
	if err != nil {
		return nil, err
	}
	return &domain.IssuedToken{
		Token:       token,
		HashedToken: hashed,
		ExpiresAt:   s.Now().Add(ttl),
	}, nil
}

func (s *tokenIssuerService) VerifyHashedToken(ctx context.Context, hashedToken, token string) (bool, error) {
	return s.hashing.Verify(ctx, hashedToken, token)
}
