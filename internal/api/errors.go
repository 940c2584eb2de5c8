package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/service/auth"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// fieldValidationErrors are the domain's field-level validation sentinels.
// Every one of them maps to a 400 response with a client-safe message.
var fieldValidationErrors = []error{
	domain.ErrEmptyUsername,
	domain.ErrUsernameTooLong,
	domain.ErrInvalidUsername,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrPasswordNumeric,
	domain.ErrEmptyTaskTitle,
	domain.ErrTaskTitleTooLong,
	domain.ErrInvalidTaskPriority,
	domain.ErrInvalidTaskStatus,
	domain.ErrDueDateInPast,
	domain.ErrTaskCompleted,
}

func isFieldValidationError(err error) bool {
	for _, sentinel := range fieldValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrIncorrectPassword),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Validation errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity),
		isFieldValidationError(err):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe error message for the given
// error. Internal error details are never exposed to clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// Field-level validation errors carry their own client-safe message
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return validationErr.Message
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrIncorrectPassword):
		return "Incorrect password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized operation"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrTokenNotFound):
		return "Token not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists."
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists."
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Task validation errors
	case errors.Is(err, domain.ErrDueDateInPast):
		return "Due date cannot be in the past."
	case errors.Is(err, domain.ErrTaskCompleted):
		return "Cannot edit a completed task. Mark it as incomplete first."
	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return "Title is required"
	case errors.Is(err, domain.ErrTaskTitleTooLong):
		return "Title must be at most 200 characters"
	case errors.Is(err, domain.ErrInvalidTaskPriority):
		return "Priority must be between 1 and 4"
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid task status"

	// User validation errors
	case errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrInvalidUsername):
		return "Invalid username"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrPasswordNumeric):
		return "Invalid password"

	// Generic validation errors
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default generic message
	default:
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			return "Operation failed: " + storeErr.Message
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError processes validation error messages to ensure they
// are safe for client display. It extracts field names from validator errors
// but removes implementation details.
func SanitizeValidationError(err error) string {
	if err == nil {
		return "Validation error"
	}

	// Domain validation errors already carry a client-safe field and message
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return validationErr.Message
	}

	errMsg := err.Error()

	// Handle validator.ValidationErrors format:
	// "Key: 'StructName.FieldName' Error:Field validation for 'FieldName' failed on the 'tag' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) > 1 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) > 3 {
				fieldName := fieldParts[1]
				tagName := fieldParts[3]
				return fmt.Sprintf("Invalid %s: %s", fieldName, getValidationTagMessage(tagName))
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage converts validation tags to human-readable messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps err to an HTTP status and client-safe message and
// writes the error response. defaultMessage replaces the generic message for
// unexpected server errors; pass "" to keep the generic one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && defaultMessage != "" {
		safeMessage = defaultMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// HandleValidationError writes a 400 response for a request validation
// failure, sanitizing the message so internal details never reach the client.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}
