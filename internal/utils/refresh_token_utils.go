package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the SHA-256 fingerprint under which a refresh token's
// session is stored. Refresh tokens are high-entropy signed JWTs, so a fast
// deterministic hash is enough and keeps the session lookup indexable.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
