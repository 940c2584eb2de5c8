package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// taskColumns is the column list shared by every task SELECT. The due_date
// and due_time columns are read as text so the date and wall-clock values
// reach Go without a time zone being invented for them.
const taskColumns = `id, user_id, title, description, priority, status,
	due_date::text, due_time::text, completed_at, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If log is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// DB returns the underlying database connection or transaction.
func (s *PostgresTaskStore) DB() store.DBTX {
	return s.db
}

// WithTx returns a new TaskStore instance that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns validation errors from the domain Task if data is invalid.
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, priority, status,
			due_date, due_time, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::time, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		string(task.Status),
		dueDateArg(task.DueDate),
		dueTimeArg(task.DueTime),
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTaskRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
// It retrieves all tasks owned by the given user, ordered by priority, then
// due date, then creation time, all ascending.
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY priority, due_date, created_at
	`
	return s.queryTasks(ctx, query, userID)
}

// ListOverdue implements store.TaskStore.ListOverdue
// It retrieves the user's tasks whose stored status is overdue.
func (s *PostgresTaskStore) ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND status = $2
		ORDER BY priority, due_date, created_at
	`
	return s.queryTasks(ctx, query, userID, string(domain.TaskStatusOverdue))
}

// ListUpcoming implements store.TaskStore.ListUpcoming
// It retrieves the user's pending tasks due between from and to inclusive.
func (s *PostgresTaskStore) ListUpcoming(
	ctx context.Context,
	userID uuid.UUID,
	from, to domain.Date,
) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND status = $2 AND due_date BETWEEN $3::date AND $4::date
		ORDER BY due_date
	`
	return s.queryTasks(
		ctx,
		query,
		userID,
		string(domain.TaskStatusPending),
		from.String(),
		to.String(),
	)
}

// ListDueOn implements store.TaskStore.ListDueOn
// It retrieves the user's tasks due on the given date, regardless of status.
func (s *PostgresTaskStore) ListDueOn(
	ctx context.Context,
	userID uuid.UUID,
	due domain.Date,
) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND due_date = $2::date
		ORDER BY priority, due_date, created_at
	`
	return s.queryTasks(ctx, query, userID, due.String())
}

// CountByStatus implements store.TaskStore.CountByStatus
// It tallies the user's tasks per stored status in a single query.
func (s *PostgresTaskStore) CountByStatus(ctx context.Context, userID uuid.UUID) (store.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM tasks
		WHERE user_id = $1
	`

	var stats store.TaskStats
	err := s.db.QueryRowContext(
		ctx,
		query,
		userID,
		string(domain.TaskStatusCompleted),
		string(domain.TaskStatusPending),
		string(domain.TaskStatusOverdue),
	).Scan(&stats.Total, &stats.Completed, &stats.Pending, &stats.Overdue)

	if err != nil {
		log.Error("failed to count tasks by status",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return store.TaskStats{}, MapError(err)
	}

	return stats, nil
}

// Update implements store.TaskStore.Update
// It modifies an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, status = $4,
			due_date = $5::date, due_time = $6::time, completed_at = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Priority,
		string(task.Status),
		dueDateArg(task.DueDate),
		dueTimeArg(task.DueTime),
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for update",
				slog.String("task_id", task.ID.String()))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// It removes a task from the database by its ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// queryTasks runs a multi-row task query and scans the results.
// It returns an empty slice, not nil, when nothing matches.
func (s *PostgresTaskStore) queryTasks(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}

// scanTaskRow scans one row laid out as taskColumns into a domain Task.
// It works for both *sql.Row and *sql.Rows.
func scanTaskRow(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		dueDate     sql.NullString
		dueTime     sql.NullString
		completedAt sql.NullTime
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&task.Priority,
		&status,
		&dueDate,
		&dueTime,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		d, err := domain.ParseDate(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date in task row: %w", err)
		}
		task.DueDate = &d
	}
	if dueTime.Valid {
		t, err := domain.ParseTimeOfDay(dueTime.String)
		if err != nil {
			return nil, fmt.Errorf("invalid due_time in task row: %w", err)
		}
		task.DueTime = &t
	}
	if completedAt.Valid {
		ts := completedAt.Time
		task.CompletedAt = &ts
	}

	return &task, nil
}

// dueDateArg converts an optional due date to its SQL parameter form.
func dueDateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// dueTimeArg converts an optional due time to its SQL parameter form.
func dueTimeArg(t *domain.TimeOfDay) any {
	if t == nil {
		return nil
	}
	return t.String()
}
