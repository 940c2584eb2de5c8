package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// testPassword satisfies the password length rules and is shared by every
// fixture user.
const testPassword = "TestPassword123!"

// CreateTestUser builds a valid user with a unique username and the shared
// test password. It does not touch the database.
func CreateTestUser(t *testing.T) *domain.User {
	t.Helper()

	username := fmt.Sprintf("user-%s", uuid.New().String()[:8])
	user, err := domain.NewUser(username, username+"@example.com", testPassword)
	require.NoError(t, err, "Failed to create test user")
	return user
}

// MustInsertUser inserts a user row with direct SQL, bypassing the user
// store, so task and token store tests can satisfy their foreign keys
// without depending on code under test elsewhere. Returns the new user's ID.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX, username string) uuid.UUID {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash password")

	id := uuid.New()
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, username, username+"@example.com", string(hashed), now, now)
	require.NoError(t, err, "Failed to insert test user")

	return id
}

// GetUserByID reads a user row with direct SQL so store tests can verify
// writes independently of the store's own read path. Returns nil when no
// row exists.
func GetUserByID(ctx context.Context, t *testing.T, db store.DBTX, id uuid.UUID) *domain.User {
	t.Helper()

	var user domain.User
	err := db.QueryRowContext(ctx, `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		t.Fatalf("Failed to query test user: %v", err)
	}
	return &user
}

// CountUsers counts user rows matching the WHERE clause.
func CountUsers(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	whereClause string,
	args ...interface{},
) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM users WHERE " + whereClause
	require.NoError(t, db.QueryRowContext(ctx, query, args...).Scan(&count),
		"Failed to count users")
	return count
}
