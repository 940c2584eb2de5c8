package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// authTokenKeyBytes is the entropy of a token key; the key itself is the
// hex encoding, twice this length.
const authTokenKeyBytes = 20

// Common validation errors for AuthToken
var (
	ErrEmptyTokenKey    = errors.New("token key cannot be empty")
	ErrInvalidTokenKey  = errors.New("token key must be a 40-character hex string")
	ErrEmptyTokenUserID = errors.New("token user ID cannot be empty")
)

// AuthToken is an opaque API credential. Each user holds at most one token;
// it is handed out at registration and login, reused until the user logs
// out, and destroyed at logout.
type AuthToken struct {
	Key       string    `json:"key"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthToken creates a token with a freshly generated key for the given
// user. Returns an error if key generation or validation fails.
func NewAuthToken(userID uuid.UUID) (*AuthToken, error) {
	key, err := GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token key: %w", err)
	}

	token := &AuthToken{
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := token.Validate(); err != nil {
		return nil, err
	}

	return token, nil
}

// GenerateTokenKey returns a new random token key: 20 bytes from the
// system's CSPRNG encoded as 40 lowercase hex characters.
func GenerateTokenKey() (string, error) {
	b := make([]byte, authTokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Validate checks if the AuthToken has valid data.
// Returns an error if any field fails validation.
func (t *AuthToken) Validate() error {
	if err := ValidateTokenKey(t.Key); err != nil {
		return err
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTokenUserID
	}

	return nil
}

// ValidateTokenKey checks that key has the exact shape GenerateTokenKey
// produces. It lets callers reject malformed credentials before touching
// storage.
func ValidateTokenKey(key string) error {
	if key == "" {
		return ErrEmptyTokenKey
	}

	if len(key) != 2*authTokenKeyBytes {
		return ErrInvalidTokenKey
	}
	if _, err := hex.DecodeString(key); err != nil {
		return ErrInvalidTokenKey
	}

	return nil
}
