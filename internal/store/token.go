package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
)

// AuthTokenStore defines the interface for auth token persistence.
// Each user holds at most one token at a time.
type AuthTokenStore interface {
	// GetOrCreate returns the user's existing token, generating and storing
	// a fresh one only if the user has none. Both registration and login go
	// through this method, so repeated logins hand out the same key.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.AuthToken, error)

	// GetByKey resolves a token key to the stored token.
	// Returns ErrTokenNotFound if no such key exists.
	GetByKey(ctx context.Context, key string) (*domain.AuthToken, error)

	// DeleteByKey revokes a token. Any later request presenting the key is
	// unauthenticated.
	// Returns ErrTokenNotFound if no such key exists.
	DeleteByKey(ctx context.Context, key string) error

	// WithTx returns a new AuthTokenStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AuthTokenStore
}
