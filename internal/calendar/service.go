// Package calendar fetches the station's public calendar export and serves
// upcoming events. It mirrors the feed package's TTL-cache policy: a fresh
// event list is served without network activity, and concurrent callers
// needing a refetch share one in-flight fetch.
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/sync/singleflight"
)

const maxCalendarSize = 5 * 1024 * 1024

// Event is one calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	URL         string    `json:"url,omitempty"`
}

// EventList is the envelope returned by GetEvents.
type EventList struct {
	Items       []Event   `json:"items"`
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Service fetches, dedupes, and caches the calendar.
type Service struct {
	client  *http.Client
	url     string
	timeout time.Duration
	ttl     time.Duration
	now     func() time.Time

	group     singleflight.Group
	mu        sync.RWMutex
	events    []Event
	fetchedAt time.Time
}

// New creates a calendar service for the given iCal export URL. A nil clock
// uses time.Now.
func New(url string, timeout, ttl time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		client:  &http.Client{},
		url:     url,
		timeout: timeout,
		ttl:     ttl,
		now:     now,
	}
}

// GetEvents returns all events sorted by start time, refetching the export
// when the cached list has exceeded its TTL.
func (s *Service) GetEvents(ctx context.Context) (*EventList, error) {
	events, fetchedAt, err := s.cached(ctx)
	if err != nil {
		return nil, err
	}
	return &EventList{
		Items:       events,
		Count:       len(events),
		LastUpdated: fetchedAt,
	}, nil
}

// GetUpcomingEvents returns up to limit events that have not started yet.
func (s *Service) GetUpcomingEvents(ctx context.Context, limit int) ([]Event, error) {
	events, _, err := s.cached(ctx)
	if err != nil {
		return nil, err
	}

	// A non-positive limit means no limit.
	if limit < 0 {
		limit = 0
	}

	now := s.now()
	upcoming := make([]Event, 0, limit)
	for _, ev := range events {
		if ev.StartDate.Before(now) {
			continue
		}
		upcoming = append(upcoming, ev)
		if limit > 0 && len(upcoming) >= limit {
			break
		}
	}
	return upcoming, nil
}

func (s *Service) cached(ctx context.Context) ([]Event, time.Time, error) {
	s.mu.RLock()
	events, fetchedAt := s.events, s.fetchedAt
	s.mu.RUnlock()
	if events != nil && s.now().Sub(fetchedAt) < s.ttl {
		return events, fetchedAt, nil
	}

	type result struct {
		events    []Event
		fetchedAt time.Time
	}
	v, err, _ := s.group.Do("calendar", func() (interface{}, error) {
		s.mu.RLock()
		events, fetchedAt := s.events, s.fetchedAt
		s.mu.RUnlock()
		if events != nil && s.now().Sub(fetchedAt) < s.ttl {
			return result{events, fetchedAt}, nil
		}

		fetched, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		now := s.now()

		s.mu.Lock()
		s.events = fetched
		s.fetchedAt = now
		s.mu.Unlock()

		return result{fetched, now}, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	r := v.(result)
	return r.events, r.fetchedAt, nil
}

func (s *Service) fetch(ctx context.Context) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCalendarSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar body: %w", err)
	}

	return parseCalendar(data)
}

func parseCalendar(data []byte) ([]Event, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev := Event{
			ID:          propValue(ve, ics.ComponentPropertyUniqueId),
			Title:       propValue(ve, ics.ComponentPropertySummary),
			Description: propValue(ve, ics.ComponentPropertyDescription),
			Location:    propValue(ve, ics.ComponentPropertyLocation),
			URL:         propValue(ve, ics.ComponentPropertyUrl),
		}
		if start, err := ve.GetStartAt(); err == nil {
			ev.StartDate = start
		}
		if end, err := ve.GetEndAt(); err == nil {
			ev.EndDate = end
		}
		// An event with no start time cannot be placed on the site's
		// calendar views.
		if ev.StartDate.IsZero() {
			continue
		}
		events = append(events, ev)
	}

	events = collapseDuplicates(events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})

	return events, nil
}

func propValue(ve *ics.VEvent, prop ics.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}
