package services

import (
	"context"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// HashingSvc is a salted, memory-hard one-way function.
type HashingSvc interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify returns false, not an error, for a malformed digest.
	Verify(ctx context.Context, digest, plaintext string) (bool, error)
}

// Alphabet is the character set a one-time token is drawn from.
type Alphabet string

const (
	// AlphabetNumeric is used for human-typed codes.
	AlphabetNumeric Alphabet = "1234567890"
	// AlphabetAlphanumeric leaves out visually ambiguous characters.
	AlphabetAlphanumeric Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVZ"
)

// TokenIssuerSvc produces one-time tokens.
type TokenIssuerSvc interface {
	Generate(length int, alphabet Alphabet) (string, error)
	GenerateWithExpiryAndHash(ctx context.Context, length int, ttl time.Duration, alphabet Alphabet) (*domain.IssuedToken, error)
	VerifyHashedToken(ctx context.Context, hashedToken, token string) (bool, error)
}
