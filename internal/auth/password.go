// Package auth hashes and verifies user credentials with bcrypt.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the cheapest accepted cost; tests use it to stay fast.
const MinCost = bcrypt.MinCost

// DefaultCost is used when a Hasher is built with a zero cost.
const DefaultCost = bcrypt.DefaultCost

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("auth: password mismatch")

// Hasher produces and checks bcrypt password hashes.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given cost, clamped to bcrypt's range.
func NewHasher(cost int) *Hasher {
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports nil when password matches hash, ErrMismatch when it does
// not, and the underlying error for malformed hashes.
func (h *Hasher) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
