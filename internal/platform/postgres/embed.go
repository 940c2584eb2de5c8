package postgres

import "embed"

// MigrationsFS embeds the goose migration files so a binary can bring a
// fresh database up to the current schema without shipping .sql files
// alongside it.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
