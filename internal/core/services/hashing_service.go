package services

import (
	"context"
	"fmt"

	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
)

// hashingService derives scrypt digests for passwords and one-time tokens.
type hashingService struct {
	BaseService
}

func NewHashingService(opts ...Option) portssvc.HashingSvc {
	return &hashingService{BaseService: newBaseService(opts...)}
}

func (s *hashingService) Hash(ctx context.Context, plaintext string) (string, error) {
	digest, err := runWithContext(ctx, func() (string, error) {
		return utils.HashPassword(plaintext)
	})
	if err != nil {
		return "", fmt.Errorf("failed to hash value: %w", err)
	}
	return digest, nil
}

func (s *hashingService) Verify(ctx context.Context, digest, plaintext string) (bool, error) {
	ok, err := runWithContext(ctx, func() (bool, error) {
		return utils.CheckPasswordHash(plaintext, digest), nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to verify hash: %w", err)
	}
	return ok, nil
}
