package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	UsernameTakenFn func(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	EmailTakenFn    func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// Data for default implementation, keyed by username
	Users       map[string]*domain.User
	LastUserID  uuid.UUID
	CreateError error
	GetError    error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	m.Users[user.Username] = user
	m.LastUserID = user.ID
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	// Default implementation searches through Users map
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	user, exists := m.Users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	// Default simple implementation - just replace user with same ID
	for username, existingUser := range m.Users {
		if existingUser.ID == user.ID {
			// If username changed, check it's not taken
			if username != user.Username {
				if _, exists := m.Users[user.Username]; exists {
					return store.ErrUsernameExists
				}
				// Remove old entry
				delete(m.Users, username)
			}

			// Store updated user
			m.Users[user.Username] = user
			return nil
		}
	}

	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	// Default implementation searches through Users map
	for username, user := range m.Users {
		if user.ID == id {
			delete(m.Users, username)
			return nil
		}
	}

	return store.ErrUserNotFound
}

// UsernameTaken implements the UserStore interface
func (m *MockUserStore) UsernameTaken(
	ctx context.Context,
	username string,
	excludeID uuid.UUID,
) (bool, error) {
	if m.UsernameTakenFn != nil {
		return m.UsernameTakenFn(ctx, username, excludeID)
	}

	user, exists := m.Users[username]
	if !exists {
		return false, nil
	}
	return user.ID != excludeID, nil
}

// EmailTaken implements the UserStore interface
func (m *MockUserStore) EmailTaken(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	if m.EmailTakenFn != nil {
		return m.EmailTakenFn(ctx, email, excludeID)
	}

	if email == "" {
		return false, nil
	}
	for _, user := range m.Users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// WithTx implements the UserStore interface for transaction support
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	// For mock purposes, just return the same mock
	return m
}
