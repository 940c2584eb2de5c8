// Package store defines the persistence interfaces the application is
// written against: UserStore, TaskStore, and AuthTokenStore, plus the
// sentinel errors their implementations return. Handlers and services
// depend only on these interfaces, keeping business rules independent
// of the concrete database technology.
package store
