package handlers

import (
	"net/http"
	"time"

	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/feed"
)

// HealthHandler provides health check functionality
type HealthHandler struct {
	feedService *feed.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(feedService *feed.Service) *HealthHandler {
	return &HealthHandler{
		feedService: feedService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health. The top-level status is healthy only when
// every service is; a cold or stale feed degrades it, so monitors never
// need to parse the per-service map.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string)

	status := h.feedService.Status()
	switch {
	case !status.HasSnapshot:
		services["feed"] = "cold"
	case !status.Fresh:
		services["feed"] = "stale"
	default:
		services["feed"] = "healthy"
	}

	overall := "healthy"
	for _, state := range services {
		if state != "healthy" {
			overall = "degraded"
			break
		}
	}

	resp := HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}

	response.JSON(w, http.StatusOK, resp)
}

// LivenessProbe handles GET /health/live
func LivenessProbe(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessProbe handles GET /health/ready. The service is ready once a
// snapshot exists; before that, callers should wait rather than be routed
// traffic that will block on the first upstream fetch.
func (h *HealthHandler) ReadinessProbe(w http.ResponseWriter, r *http.Request) {
	if !h.feedService.Status().HasSnapshot {
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "warming up"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
