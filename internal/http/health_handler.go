package http

import (
	"net/http"

	"link-rotator/internal/healthchecks"
)

type healthHandler struct {
	healthService healthchecks.HealthService
}

func NewHealthHandler(healthService healthchecks.HealthService) AppHttpHandler {
	return &healthHandler{
		healthService: healthService,
	}
}

// Handle processes GET /api/health. A degraded report is still a body, served with 503.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report := h.healthService.Check(r.Context())

	status := http.StatusOK
	if !report.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set(headerCacheControl, noStoreCacheControl)
	writeJSON(w, status, report)
	return nil
}
