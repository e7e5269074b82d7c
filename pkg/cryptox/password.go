package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used for new password hashes.
// bcrypt's own default (10) is the contract here; raise it service-wide by
// changing this constant, old hashes keep verifying regardless.
const DefaultHashCost = bcrypt.DefaultCost

// ErrPasswordMismatch is returned by VerifyPassword when the candidate
// password does not match the stored hash.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword hashes a plaintext password with bcrypt at DefaultHashCost.
// The salt is generated internally and encoded into the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext candidate against a bcrypt hash.
// Returns ErrPasswordMismatch on mismatch and other errors for malformed
// hashes.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
