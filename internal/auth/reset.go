package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewResetToken generates a password-reset token and the digest stored at
// rest. Only the digest is persisted; the raw token travels in the reset
// email and is hashed again for lookup when the user comes back.
func NewResetToken() (raw, digest string) {
	raw = uuid.NewString() + uuid.NewString()
	return raw, HashResetToken(raw)
}

// HashResetToken returns the hex SHA-256 digest of a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
