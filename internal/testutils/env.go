// Package testutils provides shared helpers for integration tests: a
// migrated database connection, transaction-based isolation, and row
// fixtures. Tests that need a real database gate themselves on DATABASE_URL
// and skip when it is absent.
package testutils

import (
	"os"
	"testing"
)

// IsIntegrationTestEnvironment reports whether a database is available for
// integration tests. Tests check this and skip rather than fail.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDatabaseURL returns the integration test database URL, failing the
// test if DATABASE_URL is unset. Callers should gate on
// IsIntegrationTestEnvironment first so a missing database skips instead.
func GetTestDatabaseURL(t *testing.T) string {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL environment variable is required for this test")
	}
	return dbURL
}

// MustGetTestDatabaseURL is the TestMain variant of GetTestDatabaseURL,
// for use where no testing.T exists. Callers must gate on
// IsIntegrationTestEnvironment first.
func MustGetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// ALLOW-PANIC
		panic("DATABASE_URL environment variable is required for integration tests")
	}
	return dbURL
}
