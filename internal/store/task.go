package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
)

// TaskStats holds the per-status task counts behind the dashboard.
// Counts reflect the stored status, which is only recomputed when a task
// is written.
type TaskStats struct {
	Total     int `json:"total_tasks"`
	Completed int `json:"completed_tasks"`
	Pending   int `json:"pending_tasks"`
	Overdue   int `json:"overdue_tasks"`
}

// TaskStore defines the interface for task data persistence.
//
// List methods return tasks ordered by priority, due date, then creation
// time, and never return tasks belonging to other users. Ownership of a
// single task is the caller's check: GetByID returns the task whoever owns
// it, and handlers must treat a foreign owner as not found.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)

	// ListOverdue retrieves the user's tasks whose stored status is overdue.
	ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)

	// ListUpcoming retrieves the user's pending tasks due between from and
	// to inclusive, ordered by due date.
	ListUpcoming(ctx context.Context, userID uuid.UUID, from, to domain.Date) ([]domain.Task, error)

	// ListDueOn retrieves the user's tasks due on the given date, regardless
	// of status.
	ListDueOn(ctx context.Context, userID uuid.UUID, due domain.Date) ([]domain.Task, error)

	// CountByStatus tallies the user's tasks per stored status.
	CountByStatus(ctx context.Context, userID uuid.UUID) (TaskStats, error)

	// Update modifies an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
