package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// PostgresAuthTokenStore implements the store.AuthTokenStore interface
// using a PostgreSQL database as the storage backend.
//
// Token keys are credentials, so they never appear in log output; log lines
// identify tokens by their owning user instead.
type PostgresAuthTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthTokenStore creates a new PostgreSQL implementation of the
// AuthTokenStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If log is nil, a
// default logger will be used.
func NewPostgresAuthTokenStore(db store.DBTX, log *slog.Logger) *PostgresAuthTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresAuthTokenStore{
		db:     db,
		logger: log.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresAuthTokenStore implements store.AuthTokenStore interface
var _ store.AuthTokenStore = (*PostgresAuthTokenStore)(nil)

// DB returns the underlying database connection or transaction.
func (s *PostgresAuthTokenStore) DB() store.DBTX {
	return s.db
}

// WithTx returns a new AuthTokenStore instance that uses the provided transaction.
func (s *PostgresAuthTokenStore) WithTx(tx *sql.Tx) store.AuthTokenStore {
	return &PostgresAuthTokenStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetOrCreate implements store.AuthTokenStore.GetOrCreate
// It returns the user's existing token, generating and inserting a fresh one
// only when the user has none. Two concurrent calls settle on the same token:
// the insert uses ON CONFLICT DO NOTHING and the loser re-reads the winner's
// row.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresAuthTokenStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.AuthToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	token, err := s.getByUserID(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, store.ErrTokenNotFound) {
		return nil, err
	}

	fresh, err := domain.NewAuthToken(userID)
	if err != nil {
		log.Error("failed to generate auth token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	query := `
		INSERT INTO auth_tokens (key, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, fresh.Key, fresh.UserID, fresh.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during token creation",
				slog.String("user_id", userID.String()))
			return nil, fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, userID)
		}

		log.Error("failed to create auth token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// A concurrent request inserted first; hand back its token.
		return s.getByUserID(ctx, userID)
	}

	log.Info("auth token created", slog.String("user_id", userID.String()))
	return fresh, nil
}

// GetByKey implements store.AuthTokenStore.GetByKey
// It resolves a token key to the stored token.
// Returns store.ErrTokenNotFound if no such key exists.
func (s *PostgresAuthTokenStore) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE key = $1
	`

	var token domain.AuthToken
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&token.Key,
		&token.UserID,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("auth token not found")
			return nil, store.ErrTokenNotFound
		}
		log.Error("failed to get auth token by key",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &token, nil
}

// DeleteByKey implements store.AuthTokenStore.DeleteByKey
// It revokes a token; any later request presenting the key is unauthenticated.
// Returns store.ErrTokenNotFound if no such key exists.
func (s *PostgresAuthTokenStore) DeleteByKey(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM auth_tokens WHERE key = $1`

	result, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		log.Error("failed to delete auth token",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "auth token"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("auth token not found for delete")
			return store.ErrTokenNotFound
		}
		return err
	}

	log.Info("auth token deleted")
	return nil
}

// getByUserID retrieves the token owned by the given user.
// Returns store.ErrTokenNotFound if the user has no token.
func (s *PostgresAuthTokenStore) getByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.AuthToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`

	var token domain.AuthToken
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&token.Key,
		&token.UserID,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		log.Error("failed to get auth token by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return &token, nil
}
