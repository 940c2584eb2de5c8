package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. A bcryptCost outside bcrypt's supported range falls back to the default
// cost. If log is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, log *slog.Logger) *PostgresUserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// DB returns the underlying database connection or transaction.
func (s *PostgresUserStore) DB() store.DBTX {
	return s.db
}

// WithTx returns a new UserStore instance that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user to the database, hashing the plaintext password first.
// Returns store.ErrUsernameExists if the username is already taken.
// Returns validation errors from the domain User if data is invalid.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := s.hashPassword(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = "" // never keep the plaintext around
	}

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already taken",
				slog.String("username", user.Username))
			return MapUniqueViolation(err, "", "", store.ErrUsernameExists)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// It retrieves a user by their unique ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID", slog.String("user_id", id.String()))

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return &user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
// It retrieves a user by their username.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by username", slog.String("username", username))

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}

	return &user, nil
}

// Update implements store.UserStore.Update
// It modifies an existing user's details. When a plaintext Password is set
// on the user, it is hashed and replaces the stored hash.
// Returns store.ErrUserNotFound if the user does not exist.
// Returns store.ErrUsernameExists if renaming to a taken username.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := s.hashPassword(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = $1, email = $2, hashed_password = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already taken",
				slog.String("username", user.Username))
			return MapUniqueViolation(err, "", "", store.ErrUsernameExists)
		}

		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("user not found for update",
				slog.String("user_id", user.ID.String()))
			return store.ErrUserNotFound
		}
		return err
	}

	log.Info("user updated successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// Delete implements store.UserStore.Delete
// It removes a user from the database; tasks and the auth token cascade.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM users WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("user not found for delete", slog.String("user_id", id.String()))
			return store.ErrUserNotFound
		}
		return err
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}

// UsernameTaken implements store.UserStore.UsernameTaken
func (s *PostgresUserStore) UsernameTaken(
	ctx context.Context,
	username string,
	excludeID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`

	var taken bool
	if err := s.db.QueryRowContext(ctx, query, username, excludeID).Scan(&taken); err != nil {
		log.Error("failed to check username availability",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return false, MapError(err)
	}

	return taken, nil
}

// EmailTaken implements store.UserStore.EmailTaken
// The empty email is never considered taken; accounts without an email all
// store the empty string.
func (s *PostgresUserStore) EmailTaken(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" {
		return false, nil
	}

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	var taken bool
	if err := s.db.QueryRowContext(ctx, query, email, excludeID).Scan(&taken); err != nil {
		log.Error("failed to check email availability",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return false, MapError(err)
	}

	return taken, nil
}

// hashPassword hashes a plaintext password with the store's bcrypt cost.
func (s *PostgresUserStore) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
