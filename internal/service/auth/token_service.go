package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// TokenService defines operations for managing opaque authentication tokens.
// Tokens are random keys persisted server-side, so validation is a lookup
// and revocation takes effect immediately.
type TokenService interface {
	// IssueToken returns the token key for the given user, creating one if
	// the user does not have a token yet. Issuing is idempotent: repeated
	// logins hand back the same key until the user logs out.
	IssueToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken resolves a token key to the owning user's ID.
	// Returns ErrMissingToken when the key is empty, or ErrInvalidToken
	// when it is malformed or does not match any issued token.
	ValidateToken(ctx context.Context, key string) (uuid.UUID, error)

	// RevokeToken destroys the token with the given key. The key stops
	// authenticating as soon as this returns. Returns ErrInvalidToken if
	// no such token exists.
	RevokeToken(ctx context.Context, key string) error
}

// storeTokenService is an implementation of TokenService backed by an
// AuthTokenStore.
type storeTokenService struct {
	tokens store.AuthTokenStore
	logger *slog.Logger
}

// Ensure storeTokenService implements TokenService interface
var _ TokenService = (*storeTokenService)(nil)

// NewTokenService creates a token service backed by the given store.
func NewTokenService(tokens store.AuthTokenStore, log *slog.Logger) (TokenService, error) {
	if tokens == nil {
		return nil, fmt.Errorf("auth token store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &storeTokenService{
		tokens: tokens,
		logger: log.With(slog.String("component", "token_service")),
	}, nil
}

// IssueToken hands out the user's token key, minting one on first use.
func (s *storeTokenService) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return "", domain.ErrEmptyTokenUserID
	}

	token, err := s.tokens.GetOrCreate(ctx, userID)
	if err != nil {
		log.Error("failed to issue auth token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to issue auth token: %w", err)
	}

	return token.Key, nil
}

// ValidateToken looks up the key and returns the owning user's ID.
func (s *storeTokenService) ValidateToken(ctx context.Context, key string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if key == "" {
		return uuid.Nil, ErrMissingToken
	}

	// Reject malformed keys before hitting storage
	if err := domain.ValidateTokenKey(key); err != nil {
		log.Debug("token validation failed: malformed key")
		return uuid.Nil, ErrInvalidToken
	}

	token, err := s.tokens.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			log.Debug("token validation failed: unknown key")
			return uuid.Nil, ErrInvalidToken
		}
		log.Error("failed to look up auth token",
			slog.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("failed to look up auth token: %w", err)
	}

	return token.UserID, nil
}

// RevokeToken deletes the token so the key stops authenticating.
func (s *storeTokenService) RevokeToken(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if key == "" {
		return ErrMissingToken
	}

	if err := s.tokens.DeleteByKey(ctx, key); err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		log.Error("failed to revoke auth token",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}

	return nil
}
