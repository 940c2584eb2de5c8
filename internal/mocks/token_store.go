package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// MockAuthTokenStore implements store.AuthTokenStore for testing
type MockAuthTokenStore struct {
	// Function fields for customizable behavior
	GetOrCreateFn func(ctx context.Context, userID uuid.UUID) (*domain.AuthToken, error)
	GetByKeyFn    func(ctx context.Context, key string) (*domain.AuthToken, error)
	DeleteByKeyFn func(ctx context.Context, key string) error

	// Data for default implementation, keyed by token key
	Tokens map[string]*domain.AuthToken
}

// NewMockAuthTokenStore creates a new mock store with initialized defaults
func NewMockAuthTokenStore() *MockAuthTokenStore {
	return &MockAuthTokenStore{
		Tokens: make(map[string]*domain.AuthToken),
	}
}

// Ensure MockAuthTokenStore implements store.AuthTokenStore
var _ store.AuthTokenStore = (*MockAuthTokenStore)(nil)

// GetOrCreate implements the AuthTokenStore interface
func (m *MockAuthTokenStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.AuthToken, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, userID)
	}

	for _, token := range m.Tokens {
		if token.UserID == userID {
			return token, nil
		}
	}

	token, err := domain.NewAuthToken(userID)
	if err != nil {
		return nil, err
	}
	m.Tokens[token.Key] = token
	return token, nil
}

// GetByKey implements the AuthTokenStore interface
func (m *MockAuthTokenStore) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, key)
	}

	token, exists := m.Tokens[key]
	if !exists {
		return nil, store.ErrTokenNotFound
	}
	return token, nil
}

// DeleteByKey implements the AuthTokenStore interface
func (m *MockAuthTokenStore) DeleteByKey(ctx context.Context, key string) error {
	if m.DeleteByKeyFn != nil {
		return m.DeleteByKeyFn(ctx, key)
	}

	if _, exists := m.Tokens[key]; !exists {
		return store.ErrTokenNotFound
	}
	delete(m.Tokens, key)
	return nil
}

// WithTx implements the AuthTokenStore interface for transaction support
func (m *MockAuthTokenStore) WithTx(tx *sql.Tx) store.AuthTokenStore {
	// For mock purposes, just return the same mock
	return m
}
