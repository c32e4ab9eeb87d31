// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string
	Env  string

	// Podcast feed settings
	FeedURL          string
	FeedFallbackURLs []string
	FeedCacheTTL     time.Duration
	FetchTimeout     time.Duration
	UserAgent        string

	// Calendar settings
	CalendarURL      string
	CalendarCacheTTL time.Duration

	// CORS
	CORSOrigins []string

	// Rate limiting
	RateLimitPerMinute int
}

// Load returns a new Config struct populated from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		FeedURL:            getEnv("FEED_URL", "https://feeds.afrowaveradio.org/episodes.rss"),
		FeedFallbackURLs:   getEnvSlice("FEED_FALLBACK_URLS", nil),
		FeedCacheTTL:       getEnvDuration("FEED_CACHE_TTL", 5*time.Minute),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", 12*time.Second),
		UserAgent:          getEnv("USER_AGENT", "AfroWaveRadio/1.0 (+https://afrowaveradio.org)"),
		CalendarURL:        getEnv("CALENDAR_URL", ""),
		CalendarCacheTTL:   getEnvDuration("CALENDAR_CACHE_TTL", 5*time.Minute),
		CORSOrigins:        getEnvSlice("CORS_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
	}
}

// FeedSources returns the primary feed URL followed by its fallback mirrors,
// in the order the fetcher should try them.
func (c *Config) FeedSources() []string {
	sources := make([]string, 0, 1+len(c.FeedFallbackURLs))
	sources = append(sources, c.FeedURL)
	sources = append(sources, c.FeedFallbackURLs...)
	return sources
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvSlice retrieves a comma-separated environment variable as a slice.
func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
