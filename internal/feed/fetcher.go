package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// maxFeedSize bounds how much of a feed body is read.
const maxFeedSize = 10 * 1024 * 1024

// Fetcher retrieves the raw feed document over HTTP. It tries the primary
// source first, then each fallback mirror in order, with a bounded timeout
// per attempt. The underlying request is aborted on timeout so a hung mirror
// cannot stall the whole fetch.
type Fetcher struct {
	client    *http.Client
	sources   []string
	timeout   time.Duration
	userAgent string
}

// NewFetcher creates a fetcher for the given ordered source list.
func NewFetcher(sources []string, timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		sources:   sources,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Fetch returns the body of the first source that answers with a 2xx. When
// every source fails it returns a FetchError carrying each per-source cause.
// A failed attempt has no side effects beyond the HTTP call itself.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	var attempts []SourceError

	for _, src := range f.sources {
		body, err := f.fetchOne(ctx, src)
		if err == nil {
			return body, nil
		}

		log.Printf("[fetcher] source failed: %s: %v", src, err)
		attempts = append(attempts, SourceError{URL: src, Err: err})

		// The caller is gone; trying further mirrors is pointless.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &FetchError{Attempts: attempts}
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return data, nil
}
