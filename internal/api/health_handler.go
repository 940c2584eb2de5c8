package api

import (
	"net/http"
	"time"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
)

// serviceName is the identifier reported by the health endpoint.
const serviceName = "Task Management API"

// HealthHandler reports service liveness. It touches no dependencies, so it
// answers even when the database is down.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}
