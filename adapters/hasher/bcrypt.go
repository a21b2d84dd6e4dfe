// Package hasher provides the slow adaptive password hash used for member
// secrets.
package hasher

import (
	"fmt"

	"github.com/janus-auth/janus/ports"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements the Hasher interface with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher at the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted bcrypt hash for password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare returns a non-nil error when password does not match hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var _ ports.Hasher = (*BcryptHasher)(nil)
