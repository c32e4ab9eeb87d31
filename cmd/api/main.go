package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afrowave-radio/backend/internal/api"
	"github.com/afrowave-radio/backend/internal/calendar"
	"github.com/afrowave-radio/backend/internal/config"
	"github.com/afrowave-radio/backend/internal/feed"
	"github.com/afrowave-radio/backend/internal/submissions"
)

// defaultAuthor is the byline used for feed items published without one.
const defaultAuthor = "AfroWave Radio"

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("[main] Starting AfroWave Radio API (env=%s)", cfg.Env)

	// Wire the feed pipeline: fetch -> parse -> normalize -> index, behind
	// the TTL cache.
	fetcher := feed.NewFetcher(cfg.FeedSources(), cfg.FetchTimeout, cfg.UserAgent)
	parser := feed.NewParser()
	normalizer := feed.NewNormalizer(feed.DefaultClassifier(), defaultAuthor)
	cache := feed.NewCache(feed.NewBuilder(fetcher, parser, normalizer), cfg.FeedCacheTTL, nil)
	feedService := feed.NewService(cache)

	calendarService := calendar.New(cfg.CalendarURL, cfg.FetchTimeout, cfg.CalendarCacheTTL, nil)
	store := submissions.NewStore(nil)

	// Create router
	router := api.NewRouter(cfg, feedService, calendarService, store)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[main] Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] Shutting down server...")

	// Give outstanding requests time to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] Server forced to shutdown: %v", err)
	}

	log.Println("[main] Server stopped")
}
