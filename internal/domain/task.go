package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

// Task priority levels, from least to most urgent.
const (
	TaskPriorityLow      = 1
	TaskPriorityMedium   = 2
	TaskPriorityHigh     = 3
	TaskPriorityCritical = 4
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID     = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong    = errors.New("task title must be at most 200 characters long")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("task priority must be between 1 and 4")
	ErrDueDateInPast       = errors.New("due date cannot be in the past")
	ErrTaskCompleted       = errors.New("cannot edit a completed task")
)

// endOfDay is the implicit deadline time for tasks that carry a due date
// but no due time.
var endOfDay = TimeOfDay{Hour: 23, Minute: 59, Second: 59}

// Task represents a single to-do item owned by a user. The stored status is
// derived from the completion timestamp and the deadline; RefreshStatus must
// be called before every write so the two never drift apart.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    int        `json:"priority"`
	Status      TaskStatus `json:"status"`
	DueDate     *Date      `json:"due_date"`
	DueTime     *TimeOfDay `json:"due_time"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new pending Task with the given owner and title, at
// medium priority. It generates a new UUID for the task ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Priority:  TaskPriorityMedium,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > 200 {
		return ErrTaskTitleTooLong
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// RefreshStatus recomputes the stored status: a task with a completion
// timestamp is completed, a task past its deadline is overdue, anything
// else is pending.
func (t *Task) RefreshStatus(now time.Time) {
	switch {
	case t.CompletedAt != nil:
		t.Status = TaskStatusCompleted
	case t.pastDue(now):
		t.Status = TaskStatusOverdue
	default:
		t.Status = TaskStatusPending
	}
}

// SetCompleted marks the task complete or incomplete and refreshes the
// stored status. Completing an already-completed task keeps the original
// completion timestamp.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	if completed {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
	} else {
		t.CompletedAt = nil
	}
	t.RefreshStatus(now)
	t.UpdatedAt = now
}

// IsCompleted reports whether the task is marked completed.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsOverdue reports whether the task is past its deadline and not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() {
		return false
	}
	return t.pastDue(now)
}

// TimeRemaining returns a compact description of the time left until the
// deadline ("2d 4h", "3h 12m", "45m"), "OVERDUE" once the deadline has
// passed, or nil when the task has no due date or is completed.
func (t *Task) TimeRemaining(now time.Time) *string {
	if t.DueDate == nil || t.IsCompleted() {
		return nil
	}

	diff := t.DueDate.At(t.dueTimeOrEndOfDay()).Sub(now)

	var s string
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60
	switch {
	case diff < 0:
		s = "OVERDUE"
	case days > 0:
		s = fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		s = fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		s = fmt.Sprintf("%dm", minutes)
	}
	return &s
}

// DaysRemaining returns the number of days until the due date, negative
// once it is past, or nil when the task has no due date.
func (t *Task) DaysRemaining(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	days := DateOf(now).DaysUntil(*t.DueDate)
	return &days
}

// pastDue reports whether the deadline has passed, ignoring completion
// state. A task due today with no due time is due at end of day.
func (t *Task) pastDue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}

	today := DateOf(now)
	if t.DueDate.Before(today) {
		return true
	}
	if *t.DueDate == today {
		return TimeOfDayOf(now).After(t.dueTimeOrEndOfDay())
	}
	return false
}

func (t *Task) dueTimeOrEndOfDay() TimeOfDay {
	if t.DueTime != nil {
		return *t.DueTime
	}
	return endOfDay
}

// ValidateDueDate checks the write-time deadline rule: a due date, when
// provided, must not be before today. Existing tasks may keep a past due
// date; only new values are rejected.
func ValidateDueDate(d *Date, now time.Time) error {
	if d != nil && d.Before(DateOf(now)) {
		return ErrDueDateInPast
	}
	return nil
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusOverdue:
		return true
	default:
		return false
	}
}

// isValidTaskPriority checks if the given priority is within the 1..4 range.
func isValidTaskPriority(priority int) bool {
	return priority >= TaskPriorityLow && priority <= TaskPriorityCritical
}
