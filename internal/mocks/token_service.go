package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueTokenFn allows test cases to mock the IssueToken behavior
	IssueTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, key string) (uuid.UUID, error)

	// RevokeTokenFn allows test cases to mock the RevokeToken behavior
	RevokeTokenFn func(ctx context.Context, key string) error

	// Default values used when functions aren't explicitly defined
	Token       string
	UserID      uuid.UUID
	Err         error
	ValidateErr error
	RevokeErr   error
}

// Verify interface implementation at compile time.
var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface
func (m *MockTokenService) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	// If a custom function is provided, use it
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, userID)
	}

	// Otherwise use the default values
	return m.Token, m.Err
}

// ValidateToken implements the auth.TokenService interface
func (m *MockTokenService) ValidateToken(ctx context.Context, key string) (uuid.UUID, error) {
	// If a custom function is provided, use it
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, key)
	}

	// Otherwise use the default values
	return m.UserID, m.ValidateErr
}

// RevokeToken implements the auth.TokenService interface
func (m *MockTokenService) RevokeToken(ctx context.Context, key string) error {
	// If a custom function is provided, use it
	if m.RevokeTokenFn != nil {
		return m.RevokeTokenFn(ctx, key)
	}

	// Otherwise use the default values
	return m.RevokeErr
}
