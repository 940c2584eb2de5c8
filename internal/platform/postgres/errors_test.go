package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mar333yas333/task-manager-api/internal/platform/postgres"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// newPgError fabricates a PgError with the given SQLSTATE code.
func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		SchemaName:     "public",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_title_check",
		File:           "postgres.go",
		Line:           100,
	}
}

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	lastInsertId int64
	err          error
}

func (m MockResult) LastInsertId() (int64, error) {
	return m.lastInsertId, m.err
}

func (m MockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "non-postgres error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "unique violation",
			err:      newPgError("23505"),
			expected: true,
		},
		{
			name:     "foreign key violation",
			err:      newPgError("23503"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.IsUniqueViolation(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "non-postgres error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "unique violation",
			err:      newPgError("23505"),
			expected: false,
		},
		{
			name:     "foreign key violation",
			err:      newPgError("23503"),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.IsForeignKeyViolation(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsCheckConstraintViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "non-postgres error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "check constraint violation",
			err:      newPgError("23514"),
			expected: true,
		},
		{
			name:     "unique violation",
			err:      newPgError("23505"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.IsCheckConstraintViolation(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsNotNullViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "non-postgres error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "not null violation",
			err:      newPgError("23502"),
			expected: true,
		},
		{
			name:     "unique violation",
			err:      newPgError("23505"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.IsNotNullViolation(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "sql.ErrNoRows",
			err:      sql.ErrNoRows,
			expected: true,
		},
		{
			name:     "store.ErrNotFound",
			err:      store.ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped store.ErrNotFound",
			err:      fmt.Errorf("wrapped: %w", store.ErrNotFound),
			expected: true,
		},
		{
			name:     "entity-specific not found",
			err:      store.ErrTaskNotFound,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.IsNotFoundError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     sql.Result
		entityName string
		wantErr    bool
		errIs      error
	}{
		{
			name:       "nil result",
			result:     nil,
			entityName: "",
			wantErr:    true,
			errIs:      nil,
		},
		{
			name:       "zero rows affected",
			result:     MockResult{rowsAffected: 0},
			entityName: "",
			wantErr:    true,
			errIs:      store.ErrNotFound,
		},
		{
			name:       "zero rows affected with entity name",
			result:     MockResult{rowsAffected: 0},
			entityName: "task",
			wantErr:    true,
			errIs:      store.ErrNotFound,
		},
		{
			name:       "one row affected",
			result:     MockResult{rowsAffected: 1},
			entityName: "",
			wantErr:    false,
			errIs:      nil,
		},
		{
			name:       "error getting rows affected",
			result:     MockResult{err: errors.New("rows affected error")},
			entityName: "",
			wantErr:    true,
			errIs:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := postgres.CheckRowsAffected(tt.result, tt.entityName)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		errIs  error
		errMsg string
	}{
		{
			name:   "nil error",
			err:    nil,
			errIs:  nil,
			errMsg: "",
		},
		{
			name:   "sql.ErrNoRows",
			err:    sql.ErrNoRows,
			errIs:  store.ErrNotFound,
			errMsg: "entity not found",
		},
		{
			name:   "unique violation",
			err:    newPgError("23505"),
			errIs:  store.ErrDuplicate,
			errMsg: "entity already exists",
		},
		{
			name:   "foreign key violation",
			err:    newPgError("23503"),
			errIs:  store.ErrInvalidEntity,
			errMsg: "foreign key violation",
		},
		{
			name:   "check constraint violation",
			err:    newPgError("23514"),
			errIs:  store.ErrInvalidEntity,
			errMsg: "check constraint violation",
		},
		{
			name:   "not null violation",
			err:    newPgError("23502"),
			errIs:  store.ErrInvalidEntity,
			errMsg: "not null violation",
		},
		{
			name:   "other postgres error",
			err:    newPgError("42P01"), // undefined_table
			errIs:  nil,
			errMsg: "",
		},
		{
			name:   "generic error",
			err:    errors.New("generic error"),
			errIs:  nil,
			errMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.MapError(tt.err)

			if tt.err == nil {
				assert.Nil(t, result)
				return
			}

			assert.NotNil(t, result)

			if tt.errIs != nil {
				assert.ErrorIs(t, result, tt.errIs)
				if tt.errMsg != "" {
					assert.Contains(t, result.Error(), tt.errMsg)
				}
			} else {
				// Unmapped errors come back unchanged.
				assert.Equal(t, tt.err.Error(), result.Error())
			}
		})
	}
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	specificError := errors.New("specific duplicate error")

	tests := []struct {
		name           string
		err            error
		entityName     string
		constraintName string
		specificError  error
		errIs          error
		errContains    string
	}{
		{
			name:           "non-unique violation",
			err:            errors.New("generic error"),
			entityName:     "user",
			constraintName: "",
			specificError:  nil,
			errIs:          nil,
			errContains:    "generic error",
		},
		{
			name:           "unique violation without specifics",
			err:            newPgError("23505"),
			entityName:     "",
			constraintName: "",
			specificError:  nil,
			errIs:          store.ErrDuplicate,
			errContains:    "duplicate entry",
		},
		{
			name:           "unique violation with entity name",
			err:            newPgError("23505"),
			entityName:     "user",
			constraintName: "",
			specificError:  nil,
			errIs:          store.ErrDuplicate,
			errContains:    "user already exists",
		},
		{
			name:           "unique violation with constraint name",
			err:            newPgError("23505"),
			entityName:     "",
			constraintName: "users_username_key",
			specificError:  nil,
			errIs:          store.ErrDuplicate,
			errContains:    "duplicate value for constraint: users_username_key",
		},
		{
			name:           "unique violation with specific error",
			err:            newPgError("23505"),
			entityName:     "user",
			constraintName: "users_username_key",
			specificError:  specificError,
			errIs:          specificError,
			errContains:    "specific duplicate error",
		},
		{
			name:           "entity name takes precedence over constraint name",
			err:            newPgError("23505"),
			entityName:     "user",
			constraintName: "users_username_key",
			specificError:  nil,
			errIs:          store.ErrDuplicate,
			errContains:    "user already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.MapUniqueViolation(
				tt.err,
				tt.entityName,
				tt.constraintName,
				tt.specificError,
			)

			if !postgres.IsUniqueViolation(tt.err) {
				assert.Equal(t, tt.err, result)
				return
			}

			assert.NotNil(t, result)

			if tt.errIs != nil {
				assert.ErrorIs(t, result, tt.errIs)
			}

			if tt.errContains != "" {
				assert.Contains(t, result.Error(), tt.errContains)
			}
		})
	}
}
