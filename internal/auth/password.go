package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher produces and checks bcrypt password digests.
type BcryptHasher struct {
	// Cost is the bcrypt work factor. Values below bcrypt.MinCost fall back
	// to bcrypt.DefaultCost.
	Cost int
}

// Hash returns the digest of password.
func (h BcryptHasher) Hash(password string) ([]byte, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}

// Verify reports whether password matches digest.
func (h BcryptHasher) Verify(password string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}
