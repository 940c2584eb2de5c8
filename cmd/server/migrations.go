package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mar333yas333/task-manager-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationTableName is where goose records which migrations have been applied.
const migrationTableName = "schema_migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error
// messages to slog.Error. It deliberately does not call os.Exit; the error
// propagates back to main, which owns process exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command against the connected
// database using the migration files embedded in the postgres package.
func runMigrations(db *sql.DB, logger *slog.Logger, command string) error {
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName(migrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("Running migrations", "command", command)

	var err error
	switch command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	case "version":
		err = goose.Version(db, "migrations")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("Migrations completed", "command", command)
	return nil
}
