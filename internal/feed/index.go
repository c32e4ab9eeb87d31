package feed

import (
	"sort"
	"time"
)

// BuildSnapshot sorts normalized items by recency and builds the lookup
// indexes in a single pass. Ties keep their input order. On duplicate ids the
// first occurrence in sort order wins in ByID; the duplicates themselves stay
// in Items and their type buckets, so Items is always exactly the union of
// the ByType buckets. Feeds aggregated across mirrors can legitimately carry
// the same guid twice.
func BuildSnapshot(meta *ParsedFeed, items []*Item, fetchedAt time.Time) *Snapshot {
	sorted := make([]*Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt > sorted[j].PublishedAt
	})

	byID := make(map[string]*Item, len(sorted))
	byType := make(map[ContentType][]*Item, len(ContentTypes))

	for _, item := range sorted {
		if _, seen := byID[item.ID]; !seen {
			byID[item.ID] = item
		}
		byType[item.Type] = append(byType[item.Type], item)
	}

	return &Snapshot{
		Title:       meta.Title,
		Description: meta.Description,
		Link:        meta.Link,
		Items:       sorted,
		ByID:        byID,
		ByType:      byType,
		FetchedAt:   fetchedAt,
	}
}
