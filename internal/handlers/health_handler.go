package handlers

import (
	"net/http"

	"estate-backoffice/internal/health"
	"estate-backoffice/pkg/utils"
)

type HealthHandler struct {
	checker  *health.HealthChecker
	sessions func() int
}

func NewHealthHandler(checker *health.HealthChecker, sessions func() int) *HealthHandler {
	return &HealthHandler{checker: checker, sessions: sessions}
}

// BasicHealth - for Kubernetes liveness probe
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth - ready while the booking API answers
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic(r.Context())
	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// DetailedHealth - for monitoring dashboard
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.checker.CheckDetailed(r.Context(), h.sessions()))
}
