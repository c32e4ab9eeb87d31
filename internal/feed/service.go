package feed

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Pagination defaults and bounds for Search.
const (
	DefaultPageSize = 24
	MaxPageSize     = 50
)

// Service is the public query surface over the cached feed snapshot. All
// operations are read-only against the current (possibly just-rebuilt)
// snapshot; only the cache inside it holds state.
type Service struct {
	cache *Cache
}

// NewService creates the query service around a cache.
func NewService(cache *Cache) *Service {
	return &Service{cache: cache}
}

// Source supplies raw feed bytes. *Fetcher is the production implementation;
// tests inject their own.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// NewBuilder wires fetch, parse, normalize, and index into the function the
// cache runs on every rebuild. The whole pass either produces a complete
// snapshot or an error; no partial state is ever published.
func NewBuilder(source Source, parser *Parser, normalizer *Normalizer) BuildFunc {
	return func(ctx context.Context) (*Snapshot, error) {
		data, err := source.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		parsed, err := parser.Parse(data)
		if err != nil {
			return nil, err
		}
		items := normalizer.Normalize(parsed.Items)
		return BuildSnapshot(parsed, items, time.Time{}), nil
	}
}

// Feed is the full-feed envelope returned by GetFeed.
type Feed struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Items       []*Item   `json:"items"`
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// SearchFilters narrows a search. Type restricts to one bucket and must
// match it exactly (case- and plural-insensitive); region and genre are
// case-insensitive substring matches against the inferred labels, so a
// filter of "africa" matches a label of "South Africa". Date bounds are
// inclusive against the item's derived timestamp.
type SearchFilters struct {
	Type     string     `json:"type,omitempty"`
	Region   string     `json:"region,omitempty"`
	Genre    string     `json:"genre,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

// PageRequest selects one page of a result set. Zero values take defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

// SearchResult is the paginated search envelope. Total is the filtered-set
// size before pagination; Count is the number of items on this page.
type SearchResult struct {
	Items    []*Item       `json:"items"`
	Count    int           `json:"count"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	HasMore  bool          `json:"hasMore"`
	Query    string        `json:"query"`
	Filters  SearchFilters `json:"filters"`
}

// GetFeed returns the full snapshot in recency order, refreshing the cache
// first when forceRefresh is set.
func (s *Service) GetFeed(ctx context.Context, forceRefresh bool) (*Feed, error) {
	var (
		snap *Snapshot
		err  error
	)
	if forceRefresh {
		snap, err = s.cache.Refresh(ctx)
	} else {
		snap, err = s.cache.Get(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &Feed{
		Title:       snap.Title,
		Description: snap.Description,
		Link:        snap.Link,
		Items:       snap.Items,
		Count:       len(snap.Items),
		LastUpdated: snap.FetchedAt,
	}, nil
}

// Refresh forces a cache rebuild and returns the new feed.
func (s *Service) Refresh(ctx context.Context) (*Feed, error) {
	return s.GetFeed(ctx, true)
}

// GetByID looks an item up by id. A missing id yields ErrNotFound, never an
// upstream failure.
func (s *Service) GetByID(ctx context.Context, id string) (*Item, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if item, ok := snap.ByID[id]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// GetByType returns one type bucket. The type string is matched case- and
// plural-insensitively; an unrecognized type yields an empty list, not an
// error.
func (s *Service) GetByType(ctx context.Context, typ string) ([]*Item, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	ct, ok := NormalizeType(typ)
	if !ok {
		return []*Item{}, nil
	}
	items := snap.ByType[ct]
	if items == nil {
		return []*Item{}, nil
	}
	return items, nil
}

// Search runs a case-insensitive substring search with independent AND
// filters and pagination. An empty query matches everything; an empty result
// is success with count 0. The type bucket is selected up front so the
// substring scan only touches candidates.
func (s *Service) Search(ctx context.Context, query string, filters SearchFilters, page PageRequest) (*SearchResult, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	pool := snap.Items
	typeKey := ""
	if filters.Type != "" {
		if ct, ok := NormalizeType(filters.Type); ok {
			pool = snap.ByType[ct]
			typeKey = strings.ToLower(string(ct))
		} else {
			pool = nil
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	regionKey := strings.ToLower(filters.Region)
	genreKey := strings.ToLower(filters.Genre)
	dateFiltered := filters.DateFrom != nil || filters.DateTo != nil

	matched := make([]*Item, 0, len(pool))
	for _, item := range pool {
		if typeKey != "" && item.typeKey != typeKey {
			continue
		}
		if regionKey != "" && !strings.Contains(item.regionKey, regionKey) {
			continue
		}
		if genreKey != "" && !strings.Contains(item.genreKey, genreKey) {
			continue
		}
		if dateFiltered {
			// A zero timestamp cannot be proven in range.
			if item.PublishedAt == 0 {
				continue
			}
			if filters.DateFrom != nil && item.PublishedAt < filters.DateFrom.UnixMilli() {
				continue
			}
			if filters.DateTo != nil && item.PublishedAt > filters.DateTo.UnixMilli() {
				continue
			}
		}
		if q != "" && !strings.Contains(item.searchBlob, q) {
			continue
		}
		matched = append(matched, item)
	}

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(matched)
	start := (pageNum - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	items := matched[start:end]

	return &SearchResult{
		Items:    items,
		Count:    len(items),
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
		HasMore:  start+len(items) < total,
		Query:    query,
		Filters:  filters,
	}, nil
}

// Status reports cache state without triggering any fetch.
type Status struct {
	HasSnapshot bool      `json:"hasSnapshot"`
	Fresh       bool      `json:"fresh"`
	ItemCount   int       `json:"itemCount"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Status returns the current cache state for health and status endpoints.
func (s *Service) Status() Status {
	snap := s.cache.Peek()
	if snap == nil {
		return Status{}
	}
	return Status{
		HasSnapshot: true,
		Fresh:       s.cache.Fresh(),
		ItemCount:   len(snap.Items),
		LastUpdated: snap.FetchedAt,
	}
}

// NormalizeType maps user input like "EPISODES" or "episode" onto a content
// bucket. The second return is false for an unrecognized type.
func NormalizeType(s string) (ContentType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, "s")
	switch key {
	case "episode":
		return TypeEpisode, true
	case "feature":
		return TypeFeature, true
	case "event":
		return TypeEvent, true
	case "program":
		return TypeProgram, true
	}
	return "", false
}
