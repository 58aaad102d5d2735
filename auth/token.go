package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenKeyBytes is the entropy of a token key: 20 random bytes, 160
// bits, rendered as 40 hex characters. Keys must come from a CSPRNG;
// deriving them from user id or timestamps would allow offline forgery.
const tokenKeyBytes = 20

// TokenKeyLength is the length of a token key in characters.
const TokenKeyLength = tokenKeyBytes * 2

// NewTokenKey generates an opaque token key from crypto/rand.
func NewTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
