package handlers

import (
	"net/http"

	"github.com/hande-app/logwatch/internal/monitoring"
)

// HealthHandler serves the unauthenticated health endpoint.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Get reports service status and host resource usage.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, monitoring.Health())
}
