// Package handlers contains the HTTP handlers for the public API.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/feed"
)

// FeedHandler handles feed-level HTTP requests
type FeedHandler struct {
	feedService *feed.Service
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	result, err := h.feedService.GetFeed(r.Context(), false)
	if err != nil {
		writeFeedError(w, err)
		return
	}

	etag := response.ETag(result)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=60")
	if match := r.Header.Get("If-None-Match"); match == etag {
		response.NotModified(w)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// refreshResponse is the body of a forced refresh.
type refreshResponse struct {
	Message     string `json:"message"`
	Count       int    `json:"count"`
	LastUpdated string `json:"lastUpdated"`
}

// Refresh handles POST /api/v1/feed/refresh. It invalidates the cache and
// blocks until a new snapshot is built.
func (h *FeedHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.feedService.Refresh(r.Context())
	if err != nil {
		writeFeedError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, refreshResponse{
		Message:     fmt.Sprintf("Feed refreshed: %d items", result.Count),
		Count:       result.Count,
		LastUpdated: result.LastUpdated.UTC().Format(time.RFC3339),
	})
}

// writeFeedError maps the feed error taxonomy onto HTTP responses. Parse and
// fetch failures both mean no usable snapshot, but they carry distinct codes
// so operators can tell a dead mirror from a corrupted one.
func writeFeedError(w http.ResponseWriter, err error) {
	var parseErr *feed.ParseError
	if errors.As(err, &parseErr) {
		response.ServiceDegraded(w, "upstream_invalid", "Feed source returned invalid markup")
		return
	}
	var fetchErr *feed.FetchError
	if errors.As(err, &fetchErr) {
		response.ServiceDegraded(w, "upstream_unavailable", "No feed source is reachable")
		return
	}
	response.InternalError(w, "")
}
