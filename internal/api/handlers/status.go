package handlers

import (
	"net/http"
	"time"

	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/config"
	"github.com/afrowave-radio/backend/internal/feed"
)

// StatusHandler handles the status API endpoint
type StatusHandler struct {
	feedService *feed.Service
	cfg         *config.Config
	startTime   time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(feedService *feed.Service, cfg *config.Config) *StatusHandler {
	return &StatusHandler{
		feedService: feedService,
		cfg:         cfg,
		startTime:   time.Now(),
	}
}

// StatusResponse represents the full status response
type StatusResponse struct {
	Environment string      `json:"environment"`
	Uptime      string      `json:"uptime"`
	Feed        feed.Status `json:"feed"`
	FeedSources int         `json:"feedSources"`
	CacheTTL    string      `json:"cacheTTL"`
}

// GetStatus handles GET /api/v1/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Environment: h.cfg.Env,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Feed:        h.feedService.Status(),
		FeedSources: len(h.cfg.FeedSources()),
		CacheTTL:    h.cfg.FeedCacheTTL.String(),
	}

	response.Success(w, resp)
}
