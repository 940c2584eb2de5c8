// Package postgres provides PostgreSQL-backed implementations of the
// storage interfaces defined in the internal/store package. It owns the
// SQL for users, tasks, and auth tokens, the mapping between database
// rows and domain entities, and the translation of driver errors into
// store sentinel errors. The package also embeds the goose migration
// files that define the schema these stores depend on.
package postgres
