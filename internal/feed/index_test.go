package feed

import (
	"testing"
	"time"
)

func testItem(id string, typ ContentType, publishedAt int64) *Item {
	return &Item{
		ID:          id,
		Title:       "item " + id,
		Type:        typ,
		PublishedAt: publishedAt,
	}
}

func TestBuildSnapshotSortsByRecency(t *testing.T) {
	items := []*Item{
		testItem("old", TypeEpisode, 100),
		testItem("newest", TypeEpisode, 300),
		testItem("undated", TypeEpisode, 0),
		testItem("mid", TypeEpisode, 200),
	}

	snap := BuildSnapshot(&ParsedFeed{}, items, time.Now())

	wantOrder := []string{"newest", "mid", "old", "undated"}
	for i, want := range wantOrder {
		if snap.Items[i].ID != want {
			t.Errorf("Items[%d] = %q, want %q", i, snap.Items[i].ID, want)
		}
	}
}

func TestBuildSnapshotStableTies(t *testing.T) {
	items := []*Item{
		testItem("first", TypeEpisode, 100),
		testItem("second", TypeEpisode, 100),
		testItem("third", TypeEpisode, 100),
	}

	snap := BuildSnapshot(&ParsedFeed{}, items, time.Now())

	for i, want := range []string{"first", "second", "third"} {
		if snap.Items[i].ID != want {
			t.Errorf("tie order broken: Items[%d] = %q, want %q", i, snap.Items[i].ID, want)
		}
	}
}

func TestBuildSnapshotDuplicateIDFirstWins(t *testing.T) {
	newer := testItem("abc", TypeEpisode, 200)
	newer.Title = "newer title"
	older := testItem("abc", TypeEpisode, 100)
	older.Title = "older title"

	// Input order has the older one first; recency sort must decide.
	snap := BuildSnapshot(&ParsedFeed{}, []*Item{older, newer}, time.Now())

	got, ok := snap.ByID["abc"]
	if !ok {
		t.Fatal(`ByID["abc"] missing`)
	}
	if got.Title != "newer title" {
		t.Errorf(`ByID["abc"].Title = %q, want the first occurrence in recency order`, got.Title)
	}
	if len(snap.ByID) != 1 {
		t.Errorf("len(ByID) = %d, want 1 entry per distinct id", len(snap.ByID))
	}
	// Both occurrences stay in Items and the bucket.
	if len(snap.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(snap.Items))
	}
}

func TestBuildSnapshotBucketCompleteness(t *testing.T) {
	items := []*Item{
		testItem("e1", TypeEpisode, 500),
		testItem("f1", TypeFeature, 400),
		testItem("e2", TypeEpisode, 300),
		testItem("ev1", TypeEvent, 200),
		testItem("p1", TypeProgram, 100),
	}

	snap := BuildSnapshot(&ParsedFeed{}, items, time.Now())

	bucketTotal := 0
	seen := make(map[string]int)
	for _, bucket := range snap.ByType {
		bucketTotal += len(bucket)
		for _, item := range bucket {
			seen[item.ID]++
		}
	}

	if bucketTotal != len(snap.Items) {
		t.Errorf("bucket union size = %d, want %d", bucketTotal, len(snap.Items))
	}
	for _, item := range snap.Items {
		if seen[item.ID] != 1 {
			t.Errorf("item %q appears %d times across buckets, want 1", item.ID, seen[item.ID])
		}
	}

	// Buckets preserve the relative order of Items.
	episodes := snap.ByType[TypeEpisode]
	if len(episodes) != 2 || episodes[0].ID != "e1" || episodes[1].ID != "e2" {
		t.Errorf("episode bucket order = %v", episodes)
	}
}

func TestBuildSnapshotCarriesFeedMeta(t *testing.T) {
	meta := &ParsedFeed{
		Title:       "AfroWave Radio",
		Description: "desc",
		Link:        "https://afrowaveradio.org",
	}
	fetchedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	snap := BuildSnapshot(meta, nil, fetchedAt)

	if snap.Title != meta.Title || snap.Link != meta.Link {
		t.Errorf("snapshot meta = %q/%q", snap.Title, snap.Link)
	}
	if !snap.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", snap.FetchedAt, fetchedAt)
	}
}
