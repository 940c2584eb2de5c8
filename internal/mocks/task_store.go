package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByUserFn    func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	ListOverdueFn   func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	ListUpcomingFn  func(ctx context.Context, userID uuid.UUID, from, to domain.Date) ([]domain.Task, error)
	ListDueOnFn     func(ctx context.Context, userID uuid.UUID, due domain.Date) ([]domain.Task, error)
	CountByStatusFn func(ctx context.Context, userID uuid.UUID) (store.TaskStats, error)
	UpdateFn        func(ctx context.Context, task *domain.Task) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by task ID
	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
	GetError    error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	return m.collect(func(t *domain.Task) bool {
		return t.UserID == userID
	}), nil
}

// ListOverdue implements the TaskStore interface
func (m *MockTaskStore) ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, userID)
	}

	return m.collect(func(t *domain.Task) bool {
		return t.UserID == userID && t.Status == domain.TaskStatusOverdue
	}), nil
}

// ListUpcoming implements the TaskStore interface
func (m *MockTaskStore) ListUpcoming(
	ctx context.Context,
	userID uuid.UUID,
	from, to domain.Date,
) ([]domain.Task, error) {
	if m.ListUpcomingFn != nil {
		return m.ListUpcomingFn(ctx, userID, from, to)
	}

	return m.collect(func(t *domain.Task) bool {
		if t.UserID != userID || t.Status != domain.TaskStatusPending || t.DueDate == nil {
			return false
		}
		return !t.DueDate.Before(from) && !t.DueDate.After(to)
	}), nil
}

// ListDueOn implements the TaskStore interface
func (m *MockTaskStore) ListDueOn(
	ctx context.Context,
	userID uuid.UUID,
	due domain.Date,
) ([]domain.Task, error) {
	if m.ListDueOnFn != nil {
		return m.ListDueOnFn(ctx, userID, due)
	}

	return m.collect(func(t *domain.Task) bool {
		return t.UserID == userID && t.DueDate != nil && *t.DueDate == due
	}), nil
}

// CountByStatus implements the TaskStore interface
func (m *MockTaskStore) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
) (store.TaskStats, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, userID)
	}

	var stats store.TaskStats
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		switch task.Status {
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusOverdue:
			stats.Overdue++
		}
	}
	return stats, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface for transaction support
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	// For mock purposes, just return the same mock
	return m
}

// collect gathers matching tasks sorted by creation time for deterministic
// test output.
func (m *MockTaskStore) collect(match func(*domain.Task) bool) []domain.Task {
	tasks := make([]domain.Task, 0)
	for _, task := range m.Tasks {
		if match(task) {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks
}
