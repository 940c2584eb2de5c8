// Package main implements the entry point for the task manager API server.
// It loads configuration, sets up logging, connects to the database, applies
// migrations, wires dependencies, and runs the HTTP server until a shutdown
// signal arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mar333yas333/task-manager-api/internal/config"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "task-manager-api: %v\n", err)
		os.Exit(1)
	}
}

// run wires the application together. It is separated from main so the exit
// code handling stays in one place.
func run(migrateCmd string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection
	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}

	// A migration command runs on its own and exits without serving traffic
	if migrateCmd != "" {
		defer closeDatabase(db, log)
		return runMigrations(db, log, migrateCmd)
	}

	// Bring the schema up to date before accepting requests
	if err := runMigrations(db, log, "up"); err != nil {
		closeDatabase(db, log)
		return err
	}

	// Wire up the application dependencies
	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Run until shutdown; the application closes the database on the way out
	return app.Run(context.Background())
}
