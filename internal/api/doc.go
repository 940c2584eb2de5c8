// Package api contains the HTTP handlers for the task manager: registration
// and token-based login, task CRUD with the completion and due-date views,
// profile management, and the dashboard summary. Handlers decode and validate
// requests, call the store and auth layers, and translate errors to a uniform
// JSON error contract without leaking internal detail.
package api
