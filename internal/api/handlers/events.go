package handlers

import (
	"net/http"

	"github.com/afrowave-radio/backend/internal/api/request"
	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/calendar"
)

// EventsHandler serves the calendar sibling service
type EventsHandler struct {
	calendarService *calendar.Service
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(calendarService *calendar.Service) *EventsHandler {
	return &EventsHandler{
		calendarService: calendarService,
	}
}

// ListEvents handles GET /api/v1/events
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.calendarService.GetEvents(r.Context())
	if err != nil {
		response.ServiceDegraded(w, "calendar_unavailable", "Calendar source is unreachable")
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

// UpcomingEvents handles GET /api/v1/events/upcoming?limit=
func (h *EventsHandler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	limit := request.GetQueryIntWithRange(r, "limit", 5, 1, 50)

	events, err := h.calendarService.GetUpcomingEvents(r.Context(), limit)
	if err != nil {
		response.ServiceDegraded(w, "calendar_unavailable", "Calendar source is unreachable")
		return
	}

	response.Success(w, events)
}
