package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, ErrIncorrectPassword on mismatch, or another
	// error if the stored hash is unusable.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Ensure BcryptVerifier implements PasswordVerifier interface
var _ PasswordVerifier = (*BcryptVerifier)(nil)

// Compare implements the PasswordVerifier interface using bcrypt. A mismatch
// is normalized to ErrIncorrectPassword so callers can distinguish a wrong
// password from a corrupt hash.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrIncorrectPassword
	}
	return err
}
