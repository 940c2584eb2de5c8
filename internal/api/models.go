package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username  string `json:"username"  validate:"required,max=150"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Password  string `json:"password"  validate:"required,min=8,max=72"`
	Password2 string `json:"password2" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse carries the profile fields of an account.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`

	// DateJoined is the account creation time
	DateJoined time.Time `json:"date_joined"`
}

// RegisterResponse defines the successful response for the registration
// endpoint. The token signs the new account in immediately.
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Message  string    `json:"message"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProfileRequest defines the payload for profile updates. A nil email
// leaves the stored address unchanged.
type UpdateProfileRequest struct {
	Username string  `json:"username" validate:"required,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// ProfileFields is the writable subset of an account's profile, echoed back
// after a profile update.
type ProfileFields struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfileResponse defines the successful response for profile updates.
type UpdateProfileResponse struct {
	User    ProfileFields `json:"user"`
	Message string        `json:"message"`
}

// DeleteAccountRequest defines the payload for account deletion. The password
// re-confirms the caller's identity before the account is removed.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string            `json:"title"       validate:"required,max=200"`
	Description *string           `json:"description"`
	Priority    *int              `json:"priority"    validate:"omitempty,min=1,max=4"`
	DueDate     *domain.Date      `json:"due_date"`
	DueTime     *domain.TimeOfDay `json:"due_time"`
	Completed   *bool             `json:"completed"`
}

// UpdateTaskRequest defines the payload for task updates. Only provided
// fields change; full updates additionally require the title.
type UpdateTaskRequest struct {
	Title       *string           `json:"title"       validate:"omitempty,max=200"`
	Description *string           `json:"description"`
	Priority    *int              `json:"priority"    validate:"omitempty,min=1,max=4"`
	DueDate     *domain.Date      `json:"due_date"`
	DueTime     *domain.TimeOfDay `json:"due_time"`
	Completed   *bool             `json:"completed"`
}

// CompleteTaskRequest defines the payload for the completion toggle. The
// pointer distinguishes an explicit false from a missing field.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// TaskResponse represents the response data for a single task. Deadline
// fields are computed at serialization time; absent values serialize as
// null rather than being omitted.
type TaskResponse struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description"`
	Priority      int               `json:"priority"`
	Status        domain.TaskStatus `json:"status"`
	Completed     bool              `json:"completed"`
	DueDate       *domain.Date      `json:"due_date"`
	DueTime       *domain.TimeOfDay `json:"due_time"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
	TimeRemaining *string           `json:"time_remaining"`
	IsOverdue     bool              `json:"is_overdue"`
	DaysRemaining *int              `json:"days_remaining"`
}

// DashboardResponse wraps the per-status task counts for the dashboard view.
type DashboardResponse struct {
	Stats store.TaskStats `json:"stats"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
