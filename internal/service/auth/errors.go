package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token key is malformed or does not
	// match any issued token
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrIncorrectPassword indicates a password comparison failed against
	// the stored hash
	ErrIncorrectPassword = errors.New("incorrect password")
)
