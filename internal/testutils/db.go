package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mar333yas333/task-manager-api/internal/platform/postgres"
)

// migrateOnce ensures the schema is brought up to date once per test binary,
// no matter how many packages ask for it.
var (
	migrateOnce sync.Once
	migrateErr  error
)

// SetupTestDatabaseSchema applies the embedded migrations to the test
// database. Call it once from TestMain before running integration tests.
// The error from the single real run is replayed to every later caller.
func SetupTestDatabaseSchema(db *sql.DB) error {
	migrateOnce.Do(func() {
		goose.SetLogger(quietGooseLogger{})
		goose.SetBaseFS(postgres.MigrationsFS)
		goose.SetTableName("schema_migrations")

		if err := goose.SetDialect("postgres"); err != nil {
			migrateErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}
		if err := goose.Up(db, "migrations"); err != nil {
			migrateErr = fmt.Errorf("failed to apply migrations: %w", err)
			return
		}
	})
	return migrateErr
}

// WithTx runs fn inside a transaction that is always rolled back, so each
// test starts from a clean table state and t.Parallel is safe.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("Failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// quietGooseLogger keeps goose output out of test logs. Fatalf must not
// exit the test binary; goose also returns the error through its API.
type quietGooseLogger struct{}

func (quietGooseLogger) Printf(format string, v ...interface{}) {}

func (quietGooseLogger) Fatalf(format string, v ...interface{}) {
	fmt.Printf(format, v...)
}
