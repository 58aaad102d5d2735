package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing and verification are free functions over the stored
// hash rather than methods on User, so the entity stays independent of
// the hashing library.

// HashPassword hashes a raw password with bcrypt at the given cost.
func HashPassword(raw string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt hash.
func VerifyPassword(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
