package api

import (
	"log/slog"
	"net/http"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// DashboardHandler serves the aggregate task statistics view.
type DashboardHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(taskStore store.TaskStore, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DashboardHandler")
	}
	return &DashboardHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "dashboard_handler")),
	}
}

// GetDashboard handles GET /dashboard requests. Counts reflect each task's
// stored status.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.taskStore.CountByStatus(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DashboardResponse{Stats: stats})
}
