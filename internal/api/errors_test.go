package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/service/auth"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "incorrect password",
			err:            auth.ErrIncorrectPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "task not found error",
			err:            store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "user not found error",
			err:            store.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped not found error",
			err:            fmt.Errorf("loading profile: %w", store.ErrUserNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "conflict error",
			err:            store.ErrUsernameExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request error",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "domain validation error type",
			err:            domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "past due date",
			err:            domain.ErrDueDateInPast,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "frozen completed task",
			err:            domain.ErrTaskCompleted,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrapped field validation error",
			err:            fmt.Errorf("creating task: %w", domain.ErrEmptyTaskTitle),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "authentication error",
			err:             auth.ErrInvalidToken,
			expectedMessage: "Invalid token",
		},
		{
			name:            "wrapped authentication error",
			err:             fmt.Errorf("failed due to: %w", auth.ErrInvalidToken),
			expectedMessage: "Invalid token",
		},
		{
			name:            "incorrect password",
			err:             auth.ErrIncorrectPassword,
			expectedMessage: "Incorrect password",
		},
		{
			name:            "task not found",
			err:             store.ErrTaskNotFound,
			expectedMessage: "Task not found",
		},
		{
			name:            "username conflict",
			err:             store.ErrUsernameExists,
			expectedMessage: "Username already exists.",
		},
		{
			name:            "email conflict",
			err:             store.ErrEmailExists,
			expectedMessage: "Email already exists.",
		},
		{
			name:            "past due date",
			err:             domain.ErrDueDateInPast,
			expectedMessage: "Due date cannot be in the past.",
		},
		{
			name:            "frozen completed task",
			err:             domain.ErrTaskCompleted,
			expectedMessage: "Cannot edit a completed task. Mark it as incomplete first.",
		},
		{
			name:            "unknown error",
			err:             errors.New("database error: connection refused"),
			expectedMessage: "An unexpected error occurred", // Database error details are hidden
		},
		{
			name: "wrapped database error with SQL details",
			err: fmt.Errorf(
				"SQL error: %w",
				errors.New("syntax error at line 42 in SELECT * FROM users"),
			),
			expectedMessage: "An unexpected error occurred", // SQL details are hidden
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestGetSafeErrorMessageWithValidationError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "validation error with field",
			err:             domain.NewValidationError("email", "must be valid", nil),
			expectedMessage: "Invalid email: must be valid",
		},
		{
			name:            "validation error without field",
			err:             domain.NewValidationError("", "validation failed", nil),
			expectedMessage: "validation failed",
		},
		{
			name: "wrapped validation error",
			err: fmt.Errorf(
				"processing request: %w",
				domain.NewValidationError("password", "too short", nil),
			),
			expectedMessage: "Invalid password: too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestGetSafeErrorMessageWithStoreError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name: "store error wrapping known sentinel keeps its mapping",
			err: store.NewStoreError(
				"task", "get", "task lookup failed", store.ErrTaskNotFound,
			),
			expectedMessage: "Task not found",
		},
		{
			name: "store error wrapping unknown error exposes only the message",
			err: store.NewStoreError(
				"task", "update", "database error", errors.New("pq: deadlock detected"),
			),
			expectedMessage: "Operation failed: database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
			assert.NotContains(t, message, "deadlock")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name: "validator error with field and tag",
			err: errors.New(
				"Key: 'RegisterRequest.Password' Error:Field validation for 'Password' failed on the 'min' tag",
			),
			expectedMessage: "Invalid Password: too short",
		},
		{
			name: "validator error with required tag",
			err: errors.New(
				"Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag",
			),
			expectedMessage: "Invalid Title: required field",
		},
		{
			name: "validator error with email tag",
			err: errors.New(
				"Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			),
			expectedMessage: "Invalid Email: invalid email format",
		},
		{
			name: "validator error with unknown tag",
			err: errors.New(
				"Key: 'Request.Field' Error:Field validation for 'Field' failed on the 'custom' tag",
			),
			expectedMessage: "Invalid Field: validation failed",
		},
		{
			name:            "malformed validator error",
			err:             errors.New("Field validation for Email failed"),
			expectedMessage: "Validation error",
		},
		{
			name:            "generic error",
			err:             errors.New("something went wrong"),
			expectedMessage: "Validation error",
		},
		{
			name:            "domain validation error with field",
			err:             domain.NewValidationError("username", "must be at least 3 characters", nil),
			expectedMessage: "Invalid username: must be at least 3 characters",
		},
		{
			name:            "domain validation error without field",
			err:             domain.NewValidationError("", "validation failed", nil),
			expectedMessage: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := SanitizeValidationError(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}
