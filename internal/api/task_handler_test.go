package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/mocks"
)

// taskRequest builds an authenticated request with an id path parameter, the
// way the router would deliver it.
func taskRequest(method, target string, body []byte, userID uuid.UUID, taskID string) *http.Request {
	req := authedRequest(method, target, body, userID)
	rctx := chi.NewRouteContext()
	if taskID != "" {
		rctx.URLParams.Add("id", taskID)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// seedTask stores a fresh task for the given user, optionally mutated first.
func seedTask(
	t *testing.T,
	taskStore *mocks.MockTaskStore,
	userID uuid.UUID,
	mutate func(*domain.Task),
) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, "write report")
	require.NoError(t, err)
	if mutate != nil {
		mutate(task)
	}
	taskStore.Tasks[task.ID] = task
	return task
}

func datePtr(d domain.Date) *domain.Date { return &d }

func TestCreateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tomorrow := domain.DateOf(time.Now().UTC().AddDate(0, 0, 1))
	yesterday := domain.DateOf(time.Now().UTC().AddDate(0, 0, -1))

	tests := []struct {
		name         string
		payload      string
		wantStatus   int
		wantErrorMsg string
		check        func(t *testing.T, resp TaskResponse)
	}{
		{
			name:       "minimal task",
			payload:    `{"title": "buy milk"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, resp TaskResponse) {
				assert.Equal(t, "buy milk", resp.Title)
				assert.Equal(t, 2, resp.Priority, "priority should default to medium")
				assert.Equal(t, domain.TaskStatusPending, resp.Status)
				assert.False(t, resp.Completed)
				assert.Nil(t, resp.DueDate)
				assert.Nil(t, resp.TimeRemaining)
				assert.Nil(t, resp.DaysRemaining)
			},
		},
		{
			name: "full task",
			payload: fmt.Sprintf(
				`{"title": "file taxes", "description": "use the new portal", "priority": 3, "due_date": %q, "due_time": "14:30"}`,
				tomorrow.String(),
			),
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, resp TaskResponse) {
				assert.Equal(t, "file taxes", resp.Title)
				require.NotNil(t, resp.Description)
				assert.Equal(t, "use the new portal", *resp.Description)
				assert.Equal(t, 3, resp.Priority)
				require.NotNil(t, resp.DueDate)
				assert.Equal(t, tomorrow, *resp.DueDate)
				require.NotNil(t, resp.DueTime)
				assert.Equal(t, "14:30:00", resp.DueTime.String())
				require.NotNil(t, resp.TimeRemaining)
				require.NotNil(t, resp.DaysRemaining)
				assert.Equal(t, 1, *resp.DaysRemaining)
				assert.False(t, resp.IsOverdue)
			},
		},
		{
			name:       "created already completed",
			payload:    `{"title": "already done", "completed": true}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, resp TaskResponse) {
				assert.True(t, resp.Completed)
				assert.Equal(t, domain.TaskStatusCompleted, resp.Status)
				assert.NotNil(t, resp.CompletedAt)
			},
		},
		{
			name:         "missing title",
			payload:      `{"description": "no title"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid Title",
		},
		{
			name:         "priority out of range",
			payload:      `{"title": "x", "priority": 9}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid Priority",
		},
		{
			name:         "due date in the past",
			payload:      fmt.Sprintf(`{"title": "too late", "due_date": %q}`, yesterday.String()),
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Due date cannot be in the past.",
		},
		{
			name:         "malformed due date",
			payload:      `{"title": "x", "due_date": "21-08-2026"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid request format",
		},
		{
			name:         "malformed body",
			payload:      `{"title": `,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taskStore := mocks.NewMockTaskStore()
			handler := NewTaskHandler(taskStore, slog.Default())

			recorder := httptest.NewRecorder()
			handler.CreateTask(recorder, authedRequest("POST", "/api/tasks", []byte(tt.payload), userID))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.ID)
				tt.check(t, resp)

				_, stored := taskStore.Tasks[resp.ID]
				assert.True(t, stored, "task should be persisted")
			} else {
				var errorResp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errorResp))
				assert.Contains(t, errorResp.Error, tt.wantErrorMsg)
			}
		})
	}
}

func TestCreateTaskUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	req := httptest.NewRequest("POST", "/api/tasks", nil)
	recorder := httptest.NewRecorder()
	handler.CreateTask(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// Absent optional fields must serialize as explicit nulls, not disappear
// from the payload.
func TestTaskResponseNullFields(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	recorder := httptest.NewRecorder()
	handler.CreateTask(recorder, authedRequest("POST", "/api/tasks", []byte(`{"title": "bare"}`), userID))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))

	for _, key := range []string{"description", "due_date", "due_time", "completed_at", "time_remaining", "days_remaining"} {
		v, present := body[key]
		assert.True(t, present, "key %q should be present", key)
		assert.Nil(t, v, "key %q should be null", key)
	}
	assert.Equal(t, false, body["is_overdue"])
	assert.Equal(t, false, body["completed"])
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	own := seedTask(t, taskStore, userID, nil)
	foreign := seedTask(t, taskStore, uuid.New(), nil)
	handler := NewTaskHandler(taskStore, slog.Default())

	tests := []struct {
		name       string
		taskID     string
		wantStatus int
	}{
		{"own task", own.ID.String(), http.StatusOK},
		{"foreign task reads as not found", foreign.ID.String(), http.StatusNotFound},
		{"unknown task", uuid.New().String(), http.StatusNotFound},
		{"malformed id", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.GetTask(recorder, taskRequest("GET", "/api/tasks/"+tt.taskID, nil, userID, tt.taskID))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, own.ID, resp.ID)
				assert.Equal(t, own.Title, resp.Title)
			}
		})
	}
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	yesterday := domain.DateOf(time.Now().UTC().AddDate(0, 0, -1))

	tests := []struct {
		name         string
		seed         func(*domain.Task)
		payload      string
		wantStatus   int
		wantErrorMsg string
		check        func(t *testing.T, resp TaskResponse)
	}{
		{
			name:       "retitle and reprioritize",
			payload:    `{"title": "write the report", "priority": 4}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp TaskResponse) {
				assert.Equal(t, "write the report", resp.Title)
				assert.Equal(t, 4, resp.Priority)
			},
		},
		{
			name:         "full update requires title",
			payload:      `{"priority": 1}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid Title: required field",
		},
		{
			name: "completed tasks are frozen",
			seed: func(task *domain.Task) {
				task.SetCompleted(true, time.Now().UTC())
			},
			payload:      `{"title": "rewrite it"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Cannot edit a completed task. Mark it as incomplete first.",
		},
		{
			name:         "due date in the past",
			payload:      fmt.Sprintf(`{"title": "write report", "due_date": %q}`, yesterday.String()),
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Due date cannot be in the past.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taskStore := mocks.NewMockTaskStore()
			task := seedTask(t, taskStore, userID, tt.seed)
			handler := NewTaskHandler(taskStore, slog.Default())

			recorder := httptest.NewRecorder()
			handler.UpdateTask(recorder, taskRequest(
				"PUT", "/api/tasks/"+task.ID.String(), []byte(tt.payload), userID, task.ID.String()))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				tt.check(t, resp)
			} else {
				var errorResp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errorResp))
				assert.Contains(t, errorResp.Error, tt.wantErrorMsg)
			}
		})
	}
}

func TestUpdateForeignTask(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	foreign := seedTask(t, taskStore, uuid.New(), nil)
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.UpdateTask(recorder, taskRequest(
		"PUT", "/api/tasks/"+foreign.ID.String(), []byte(`{"title": "mine now"}`),
		uuid.New(), foreign.ID.String()))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "write report", foreign.Title, "foreign task should be untouched")
}

func TestPatchTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, func(task *domain.Task) {
			desc := "quarterly numbers"
			task.Description = &desc
		})
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.PatchTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String(), []byte(`{"priority": 4}`), userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, 4, resp.Priority)
		assert.Equal(t, "write report", resp.Title)
		require.NotNil(t, resp.Description)
		assert.Equal(t, "quarterly numbers", *resp.Description)
	})

	t.Run("completion flag flips only completion state", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, nil)
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.PatchTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String(), []byte(`{"completed": true}`), userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Completed)
		assert.Equal(t, domain.TaskStatusCompleted, resp.Status)
		assert.NotNil(t, resp.CompletedAt)
		assert.Equal(t, "write report", resp.Title, "title should be unchanged")
	})

	t.Run("reopening recomputes status", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, func(task *domain.Task) {
			task.SetCompleted(true, time.Now().UTC())
		})
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.PatchTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String(), []byte(`{"completed": false}`), userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.False(t, resp.Completed)
		assert.Equal(t, domain.TaskStatusPending, resp.Status)
		assert.Nil(t, resp.CompletedAt)
	})

	t.Run("completed tasks reject field edits", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, func(task *domain.Task) {
			task.SetCompleted(true, time.Now().UTC())
		})
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.PatchTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String(), []byte(`{"title": "new title"}`), userID, task.ID.String()))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var errorResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errorResp))
		assert.Equal(t, "Cannot edit a completed task. Mark it as incomplete first.", errorResp.Error)
	})
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("completes a pending task", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, nil)
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.CompleteTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String()+"/complete", []byte(`{"completed": true}`),
			userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Completed)
		assert.Equal(t, domain.TaskStatusCompleted, resp.Status)
		require.NotNil(t, resp.CompletedAt)
	})

	t.Run("recompleting keeps the original timestamp", func(t *testing.T) {
		firstCompletion := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, func(task *domain.Task) {
			task.SetCompleted(true, firstCompletion)
		})
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.CompleteTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String()+"/complete", []byte(`{"completed": true}`),
			userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.NotNil(t, resp.CompletedAt)
		assert.Equal(t, firstCompletion, resp.CompletedAt.UTC())
	})

	t.Run("missing completed field", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, nil)
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.CompleteTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String()+"/complete", []byte(`{}`),
			userID, task.ID.String()))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("explicit false is not a missing field", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, userID, func(task *domain.Task) {
			task.SetCompleted(true, time.Now().UTC())
		})
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.CompleteTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+task.ID.String()+"/complete", []byte(`{"completed": false}`),
			userID, task.ID.String()))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.False(t, resp.Completed)
		assert.Nil(t, resp.CompletedAt)
	})

	t.Run("foreign task", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		foreign := seedTask(t, taskStore, uuid.New(), nil)
		handler := NewTaskHandler(taskStore, slog.Default())

		recorder := httptest.NewRecorder()
		handler.CompleteTask(recorder, taskRequest(
			"PATCH", "/api/tasks/"+foreign.ID.String()+"/complete", []byte(`{"completed": true}`),
			userID, foreign.ID.String()))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	own := seedTask(t, taskStore, userID, nil)
	foreign := seedTask(t, taskStore, uuid.New(), nil)
	handler := NewTaskHandler(taskStore, slog.Default())

	t.Run("deletes own task", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.DeleteTask(recorder, taskRequest(
			"DELETE", "/api/tasks/"+own.ID.String(), nil, userID, own.ID.String()))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.Bytes())
		_, exists := taskStore.Tasks[own.ID]
		assert.False(t, exists, "task should be gone")
	})

	t.Run("foreign task stays", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.DeleteTask(recorder, taskRequest(
			"DELETE", "/api/tasks/"+foreign.ID.String(), nil, userID, foreign.ID.String()))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		_, exists := taskStore.Tasks[foreign.ID]
		assert.True(t, exists, "foreign task should survive")
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.DeleteTask(recorder, taskRequest(
			"DELETE", "/api/tasks/"+own.ID.String(), nil, userID, own.ID.String()))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	seedTask(t, taskStore, userID, func(task *domain.Task) { task.Title = "first" })
	seedTask(t, taskStore, userID, func(task *domain.Task) { task.Title = "second" })
	seedTask(t, taskStore, uuid.New(), func(task *domain.Task) { task.Title = "not yours" })
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, authedRequest("GET", "/api/tasks", nil, userID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 2)
	for _, task := range resp {
		assert.NotEqual(t, "not yours", task.Title)
	}
}

func TestListTasksEmpty(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, authedRequest("GET", "/api/tasks", nil, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String(), "empty list should serialize as [] not null")
}

func TestOverdueTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()
	taskStore := mocks.NewMockTaskStore()
	overdue := seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now.AddDate(0, 0, -2)))
		task.RefreshStatus(now)
	})
	seedTask(t, taskStore, userID, nil)
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.OverdueTasks(recorder, authedRequest("GET", "/api/tasks/overdue", nil, userID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, overdue.ID, resp[0].ID)
	assert.Equal(t, domain.TaskStatusOverdue, resp[0].Status)
	assert.True(t, resp[0].IsOverdue)
	require.NotNil(t, resp[0].TimeRemaining)
	assert.Equal(t, "OVERDUE", *resp[0].TimeRemaining)
	require.NotNil(t, resp[0].DaysRemaining)
	assert.Negative(t, *resp[0].DaysRemaining)
}

func TestUpcomingTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()
	taskStore := mocks.NewMockTaskStore()

	dueSoon := seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now.AddDate(0, 0, 3)))
	})
	// Outside the seven-day window
	seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now.AddDate(0, 0, 10)))
	})
	// Completed tasks are not upcoming even when due soon
	seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now.AddDate(0, 0, 3)))
		task.SetCompleted(true, now)
	})
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.UpcomingTasks(recorder, authedRequest("GET", "/api/tasks/upcoming", nil, userID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, dueSoon.ID, resp[0].ID)
}

func TestTodayTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()
	taskStore := mocks.NewMockTaskStore()

	dueToday := seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now))
	})
	// Completed but still due today: the today view ignores status
	doneToday := seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now))
		task.SetCompleted(true, now)
	})
	seedTask(t, taskStore, userID, func(task *domain.Task) {
		task.DueDate = datePtr(domain.DateOf(now.AddDate(0, 0, 1)))
	})
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.TodayTasks(recorder, authedRequest("GET", "/api/tasks/today", nil, userID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 2)

	got := map[uuid.UUID]bool{}
	for _, task := range resp {
		got[task.ID] = true
	}
	assert.True(t, got[dueToday.ID])
	assert.True(t, got[doneToday.ID])
}

func TestListTasksStoreFailure(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	taskStore.ListByUserFn = func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
		return nil, fmt.Errorf("connection reset")
	}
	handler := NewTaskHandler(taskStore, slog.Default())

	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, authedRequest("GET", "/api/tasks", nil, uuid.New()))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var errorResp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errorResp))
	assert.Equal(t, "Failed to list tasks", errorResp.Error)
	assert.NotContains(t, errorResp.Error, "connection reset")
}
