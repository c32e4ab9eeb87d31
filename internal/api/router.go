package api

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave-radio/backend/internal/api/handlers"
	"github.com/afrowave-radio/backend/internal/calendar"
	"github.com/afrowave-radio/backend/internal/config"
	"github.com/afrowave-radio/backend/internal/feed"
	"github.com/afrowave-radio/backend/internal/middleware"
	"github.com/afrowave-radio/backend/internal/submissions"
)

// NewRouter creates and configures the main router
func NewRouter(cfg *config.Config, feedService *feed.Service, calendarService *calendar.Service, store *submissions.Store) *chi.Mux {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Timing)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORSWithOrigins(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(limiter))

	// Initialize handlers
	feedHandler := handlers.NewFeedHandler(feedService)
	itemsHandler := handlers.NewItemsHandler(feedService)
	searchHandler := handlers.NewSearchHandler(feedService)
	eventsHandler := handlers.NewEventsHandler(calendarService)
	submissionsHandler := handlers.NewSubmissionsHandler(store)
	healthHandler := handlers.NewHealthHandler(feedService)
	statusHandler := handlers.NewStatusHandler(feedService, cfg)

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", handlers.LivenessProbe)
	r.Get("/health/ready", healthHandler.ReadinessProbe)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed", feedHandler.GetFeed)
		r.Post("/feed/refresh", feedHandler.Refresh)

		r.Get("/items", itemsHandler.ListItems)
		r.Get("/items/{id}", itemsHandler.GetItem)

		r.Get("/search", searchHandler.Search)

		r.Get("/events", eventsHandler.ListEvents)
		r.Get("/events/upcoming", eventsHandler.UpcomingEvents)

		r.Get("/submissions", submissionsHandler.List)
		r.Post("/submissions", submissionsHandler.Create)

		r.Get("/status", statusHandler.GetStatus)
	})

	return r
}
