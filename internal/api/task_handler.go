package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// upcomingWindowDays is how far ahead the upcoming view looks.
const upcomingWindowDays = 7

// TaskHandler handles task-related API requests. Every endpoint operates on
// the authenticated user's own tasks; a task owned by someone else reads as
// not found.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests. Tasks come back ordered by
// priority, due date, then creation time.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]domain.Task, error) {
		return h.taskStore.ListByUser(ctx, userID)
	}, "Failed to list tasks")
}

// OverdueTasks handles GET /tasks/overdue requests. It returns tasks whose
// stored status is overdue; status is recomputed on writes, not reads.
func (h *TaskHandler) OverdueTasks(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]domain.Task, error) {
		return h.taskStore.ListOverdue(ctx, userID)
	}, "Failed to list overdue tasks")
}

// UpcomingTasks handles GET /tasks/upcoming requests. It returns pending
// tasks due within the next seven days, soonest first.
func (h *TaskHandler) UpcomingTasks(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Task, error) {
		from := domain.DateOf(now)
		to := domain.DateOf(now.AddDate(0, 0, upcomingWindowDays))
		return h.taskStore.ListUpcoming(ctx, userID, from, to)
	}, "Failed to list upcoming tasks")
}

// TodayTasks handles GET /tasks/today requests. It returns tasks due today
// regardless of status.
func (h *TaskHandler) TodayTasks(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Task, error) {
		return h.taskStore.ListDueOn(ctx, userID, domain.DateOf(now))
	}, "Failed to list today's tasks")
}

// listWith runs one of the task list queries for the authenticated user and
// writes the serialized result.
func (h *TaskHandler) listWith(
	w http.ResponseWriter,
	r *http.Request,
	query func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Task, error),
	failureMessage string,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	now := time.Now().UTC()
	tasks, err := query(r.Context(), userID, now)
	if err != nil {
		HandleAPIError(w, r, err, failureMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks, now))
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	now := time.Now().UTC()
	if err := domain.ValidateDueDate(req.DueDate, now); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := domain.NewTask(userID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	task.Description = req.Description
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	task.DueDate = req.DueDate
	task.DueTime = req.DueTime
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, now)
	} else {
		task.RefreshStatus(now)
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task, now))
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.getOwnedTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, time.Now().UTC()))
}

// UpdateTask handles PUT /tasks/{id} requests. The title is required; other
// fields update only when provided.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	h.applyTaskUpdate(w, r, true)
}

// PatchTask handles PATCH /tasks/{id} requests. Every field is optional.
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	h.applyTaskUpdate(w, r, false)
}

func (h *TaskHandler) applyTaskUpdate(w http.ResponseWriter, r *http.Request, requireTitle bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if requireTitle && req.Title == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid Title: required field")
		return
	}

	task, err := h.getOwnedTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	// A completed task is frozen until it is reopened; only the completion
	// flag itself may change
	if task.IsCompleted() && touchesTaskFields(&req) {
		HandleAPIError(w, r, domain.ErrTaskCompleted, "")
		return
	}

	now := time.Now().UTC()
	if req.DueDate != nil {
		if err := domain.ValidateDueDate(req.DueDate, now); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		task.DueDate = req.DueDate
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueTime != nil {
		task.DueTime = req.DueTime
	}
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, now)
	}
	task.RefreshStatus(now)
	task.UpdatedAt = now

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Debug("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, now))
}

// CompleteTask handles PATCH /tasks/{id}/complete requests, toggling the
// completion state in either direction.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	task, err := h.getOwnedTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	now := time.Now().UTC()
	task.SetCompleted(*req.Completed, now)

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, now))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if _, err := h.getOwnedTask(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// getOwnedTask loads a task and hides its existence from anyone but the
// owner: a foreign task reads as not found.
func (h *TaskHandler) getOwnedTask(
	ctx context.Context,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	task, err := h.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// touchesTaskFields reports whether the update changes anything beyond the
// completion flag.
func touchesTaskFields(req *UpdateTaskRequest) bool {
	return req.Title != nil || req.Description != nil || req.Priority != nil ||
		req.DueDate != nil || req.DueTime != nil
}

// taskToResponse converts a domain.Task to its API representation, computing
// the deadline-derived fields as of now.
func taskToResponse(task *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      task.Priority,
		Status:        task.Status,
		Completed:     task.IsCompleted(),
		DueDate:       task.DueDate,
		DueTime:       task.DueTime,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
		CompletedAt:   task.CompletedAt,
		TimeRemaining: task.TimeRemaining(now),
		IsOverdue:     task.IsOverdue(now),
		DaysRemaining: task.DaysRemaining(now),
	}
}

// tasksToResponse converts a list of tasks at a single point in time. The
// result is never nil so an empty list serializes as [] rather than null.
func tasksToResponse(tasks []domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = taskToResponse(&tasks[i], now)
	}
	return out
}
