package handler

import (
	"context"
	"net/http"
	"time"

	"fluto-auth/internal/container"
)

// HealthHandler handles liveness and health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.container.GetLogger(), http.StatusOK, map[string]string{
		"message": "Server is running!",
	})
}

// Check handles GET /health. The database is part of the check: a process
// that cannot reach its store should not report healthy.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	status := "healthy"
	code := http.StatusOK

	if h.container.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.container.DB.Health(ctx); err != nil {
			log.WithError(err).Error("Database health check failed")
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, log, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   "fluto-auth",
	})
}
