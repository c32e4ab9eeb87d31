package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// newTestService builds a service over a static snapshot assembled from raw
// items, run through the real normalizer so the denormalized lookup fields
// are populated the same way production items are.
func newTestService(t *testing.T, raw []RawItem) *Service {
	t.Helper()

	normalizer := NewNormalizer(nil, "AfroWave Radio")
	items := normalizer.Normalize(raw)

	build := func(ctx context.Context) (*Snapshot, error) {
		return BuildSnapshot(&ParsedFeed{Title: "test feed"}, items, time.Time{}), nil
	}
	return NewService(NewCache(build, time.Hour, nil))
}

func rawEpisode(id, title string, published time.Time) RawItem {
	return RawItem{
		GUID:            id,
		Title:           title,
		PublishedParsed: &published,
	}
}

func TestGetFeedEnvelope(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, []RawItem{
		rawEpisode("a", "First", base.Add(time.Hour)),
		rawEpisode("b", "Second", base),
	})

	got, err := svc.GetFeed(context.Background(), false)
	if err != nil {
		t.Fatalf("GetFeed() error = %v", err)
	}
	if got.Title != "test feed" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Count != 2 || len(got.Items) != 2 {
		t.Errorf("Count = %d, len(Items) = %d, want 2/2", got.Count, len(got.Items))
	}
	if got.Items[0].ID != "a" {
		t.Errorf("Items[0].ID = %q, want most recent first", got.Items[0].ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t, []RawItem{rawEpisode("exists", "x", time.Now())})

	if _, err := svc.GetByID(context.Background(), "exists"); err != nil {
		t.Fatalf("GetByID(exists) error = %v", err)
	}

	_, err := svc.GetByID(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("GetByID(missing) expected error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	// Never conflated with an upstream failure.
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		t.Error("NotFound reported as FetchError")
	}
}

func TestGetByTypeCaseAndPluralInsensitive(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, []RawItem{
		rawEpisode("e1", "episode one", now),
		{GUID: "f1", Title: "a feature", Categories: []string{"Feature"}, PublishedParsed: &now},
	})

	ctx := context.Background()
	for _, input := range []string{"episode", "Episodes", "EPISODE", "EPISODES", " episodes "} {
		items, err := svc.GetByType(ctx, input)
		if err != nil {
			t.Fatalf("GetByType(%q) error = %v", input, err)
		}
		if len(items) != 1 || items[0].ID != "e1" {
			t.Errorf("GetByType(%q) = %v, want [e1]", input, items)
		}
	}

	unknown, err := svc.GetByType(ctx, "podcast")
	if err != nil {
		t.Fatalf("GetByType(podcast) error = %v", err)
	}
	if unknown == nil || len(unknown) != 0 {
		t.Errorf("GetByType(unknown) = %v, want empty non-nil list", unknown)
	}
}

func TestSearchPaginationScenario(t *testing.T) {
	// 7 episodes matching "afro" plus one that does not.
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]RawItem, 0, 8)
	for i := 0; i < 7; i++ {
		raw = append(raw, rawEpisode(
			fmt.Sprintf("afro-%d", i),
			fmt.Sprintf("Afrobeat Session %d", i),
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	raw = append(raw, rawEpisode("other", "Morning Show", base))
	svc := newTestService(t, raw)

	result, err := svc.Search(context.Background(), "afro",
		SearchFilters{Type: "episode"},
		PageRequest{Page: 2, PageSize: 2},
	)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(result.Items) != 2 || result.Count != 2 {
		t.Errorf("page items = %d/%d, want 2", len(result.Items), result.Count)
	}
	if result.Total != 7 {
		t.Errorf("Total = %d, want 7", result.Total)
	}
	if result.Page != 2 || result.PageSize != 2 {
		t.Errorf("Page/PageSize = %d/%d, want 2/2", result.Page, result.PageSize)
	}
	if !result.HasMore {
		t.Error("HasMore = false, want true")
	}
}

func TestSearchPageSizeClamping(t *testing.T) {
	raw := make([]RawItem, 60)
	base := time.Now()
	for i := range raw {
		raw[i] = rawEpisode(fmt.Sprintf("it-%d", i), "clamp test", base)
	}
	svc := newTestService(t, raw)
	ctx := context.Background()

	cases := []struct {
		name      string
		requested int
		wantSize  int
	}{
		{"zero takes default", 0, DefaultPageSize},
		{"negative takes default", -5, DefaultPageSize},
		{"huge clamps to max", 9999, MaxPageSize},
		{"in range passes through", 10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Search(ctx, "", SearchFilters{}, PageRequest{PageSize: tc.requested})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if result.PageSize != tc.wantSize {
				t.Errorf("PageSize = %d, want %d", result.PageSize, tc.wantSize)
			}
			if result.PageSize < 1 || result.PageSize > MaxPageSize {
				t.Errorf("PageSize %d out of [1,%d]", result.PageSize, MaxPageSize)
			}
			if len(result.Items) > result.PageSize {
				t.Errorf("returned %d items for page size %d", len(result.Items), result.PageSize)
			}
		})
	}
}

func TestSearchHasMoreBoundaries(t *testing.T) {
	// Total of 6 is an exact multiple of page size 3.
	base := time.Now()
	raw := make([]RawItem, 6)
	for i := range raw {
		raw[i] = rawEpisode(fmt.Sprintf("b-%d", i), "boundary", base)
	}
	svc := newTestService(t, raw)
	ctx := context.Background()

	cases := []struct {
		page      int
		wantCount int
		wantMore  bool
	}{
		{1, 3, true},
		{2, 3, false},
		{3, 0, false},
	}

	for _, tc := range cases {
		result, err := svc.Search(ctx, "", SearchFilters{}, PageRequest{Page: tc.page, PageSize: 3})
		if err != nil {
			t.Fatalf("Search(page %d) error = %v", tc.page, err)
		}
		if len(result.Items) != tc.wantCount {
			t.Errorf("page %d: items = %d, want %d", tc.page, len(result.Items), tc.wantCount)
		}
		if result.HasMore != tc.wantMore {
			t.Errorf("page %d: HasMore = %v, want %v", tc.page, result.HasMore, tc.wantMore)
		}
	}
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	base := time.Now()
	svc := newTestService(t, []RawItem{
		rawEpisode("a", "one", base),
		rawEpisode("b", "two", base),
	})

	result, err := svc.Search(context.Background(), "", SearchFilters{}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	svc := newTestService(t, []RawItem{
		{GUID: "a", Title: "The HIGHLIFE Revival", Description: "classic sounds"},
		{GUID: "b", Title: "News", Description: "nothing relevant"},
	})

	result, err := svc.Search(context.Background(), "highlife", SearchFilters{}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "a" {
		t.Errorf("Search(highlife) = %v, want [a]", result.Items)
	}
}

func TestSearchRegionGenreSubstringFilters(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, []RawItem{
		{GUID: "sa", Title: "Jazz hour", Categories: []string{"South Africa"}, PublishedParsed: &now},
		{GUID: "gh", Title: "Accra sounds", Categories: []string{"Ghana", "Highlife"}, PublishedParsed: &now},
	})
	ctx := context.Background()

	// A filter of "africa" matches the inferred label "South Africa".
	result, err := svc.Search(ctx, "", SearchFilters{Region: "africa"}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "sa" {
		t.Errorf("region filter = %v, want [sa]", result.Items)
	}

	result, err = svc.Search(ctx, "", SearchFilters{Genre: "HIGHLIFE"}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "gh" {
		t.Errorf("genre filter = %v, want [gh]", result.Items)
	}
}

func TestSearchUnknownTypeFilterMatchesNothing(t *testing.T) {
	svc := newTestService(t, []RawItem{rawEpisode("a", "one", time.Now())})

	result, err := svc.Search(context.Background(), "", SearchFilters{Type: "mixtape"}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 0 || len(result.Items) != 0 {
		t.Errorf("unknown type filter matched %d items, want 0", result.Total)
	}
}

func TestSearchDateFilters(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, []RawItem{
		rawEpisode("jan", "january episode", jan),
		rawEpisode("feb", "february episode", feb),
		{GUID: "undated", Title: "no date"},
	})
	ctx := context.Background()

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.Search(ctx, "", SearchFilters{DateFrom: &from}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "feb" {
		t.Errorf("dateFrom filter = %v, want [feb]", result.Items)
	}

	// Bounds are inclusive.
	result, err = svc.Search(ctx, "", SearchFilters{DateFrom: &jan, DateTo: &jan}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "jan" {
		t.Errorf("inclusive bounds = %v, want [jan]", result.Items)
	}

	// An undated item is excluded once any bound is supplied, but included
	// without a date filter.
	result, err = svc.Search(ctx, "", SearchFilters{}, PageRequest{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 3 {
		t.Errorf("unfiltered total = %d, want 3 including the undated item", result.Total)
	}
}

func TestSearchErrorsPropagateFromBuild(t *testing.T) {
	cause := errors.New("connection refused")
	build := func(ctx context.Context) (*Snapshot, error) {
		return nil, &FetchError{Attempts: []SourceError{{URL: "https://x", Err: cause}}}
	}
	svc := NewService(NewCache(build, time.Hour, nil))

	_, err := svc.Search(context.Background(), "anything", SearchFilters{}, PageRequest{})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Search() error = %v, want *FetchError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error chain lost the underlying cause: %v", err)
	}
}
