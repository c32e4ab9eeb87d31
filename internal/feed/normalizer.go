package feed

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalizer converts raw parsed entries into canonical items. It is total:
// a structurally odd entry (missing title, bad date, absent categories)
// degrades to defaulted fields on that one item and never aborts the feed.
type Normalizer struct {
	classifier    *Classifier
	defaultAuthor string
}

// NewNormalizer creates a normalizer. A nil classifier uses the default
// keyword tables.
func NewNormalizer(classifier *Classifier, defaultAuthor string) *Normalizer {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Normalizer{
		classifier:    classifier,
		defaultAuthor: defaultAuthor,
	}
}

// Normalize maps every raw item to its canonical shape.
func (n *Normalizer) Normalize(raw []RawItem) []*Item {
	items := make([]*Item, 0, len(raw))
	for i := range raw {
		items = append(items, n.normalizeItem(&raw[i]))
	}
	return items
}

func (n *Normalizer) normalizeItem(raw *RawItem) *Item {
	item := &Item{
		Title:         raw.Title,
		Description:   raw.Description,
		Content:       raw.Content,
		Link:          raw.Link,
		Author:        raw.Author,
		PubDate:       raw.Published,
		Categories:    raw.Categories,
		Image:         raw.ImageURL,
		Duration:      raw.Duration,
		EpisodeNumber: raw.EpisodeNumber,
		SeasonNumber:  raw.SeasonNumber,
	}

	// Identity: guid, falling back to link, falling back to a generated id.
	switch {
	case raw.GUID != "":
		item.ID = raw.GUID
	case raw.Link != "":
		item.ID = raw.Link
	default:
		item.ID = "generated-" + uuid.NewString()
	}

	if item.Author == "" {
		item.Author = n.defaultAuthor
	}
	if item.Categories == nil {
		item.Categories = []string{}
	}

	if raw.PublishedParsed != nil {
		item.ISODate = raw.PublishedParsed.UTC().Format(time.RFC3339)
	} else if raw.UpdatedParsed != nil {
		item.ISODate = raw.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	item.PublishedAt = publishedAt(raw)

	item.Type = n.classifier.Type(raw.Categories)
	item.Region = n.classifier.Region(raw.Categories)
	item.Genre = n.classifier.Genre(raw.Categories)

	// Audio: explicit enclosure wins, media:content is the fallback. An item
	// with neither is still valid; the UI renders it as audio not available.
	if raw.EnclosureURL != "" {
		item.AudioURL = raw.EnclosureURL
		item.AudioType = raw.EnclosureType
	} else if raw.MediaURL != "" {
		item.AudioURL = raw.MediaURL
		item.AudioType = raw.MediaType
	}

	item.searchBlob = strings.ToLower(item.Title + " " + item.Description + " " + item.Content)
	item.typeKey = strings.ToLower(string(item.Type))
	item.regionKey = strings.ToLower(item.Region)
	item.genreKey = strings.ToLower(item.Genre)

	return item
}

// publishedAt derives the sortable timestamp in unix milliseconds. The
// parser's normalized date is preferred over display-formatted strings; an
// unparseable date yields 0, which sorts last in recency order.
func publishedAt(raw *RawItem) int64 {
	if raw.PublishedParsed != nil {
		return raw.PublishedParsed.UnixMilli()
	}
	if raw.UpdatedParsed != nil {
		return raw.UpdatedParsed.UnixMilli()
	}
	return parseDateString(raw.Published, raw.Updated)
}

var dateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

func parseDateString(dates ...string) int64 {
	for _, dateStr := range dates {
		dateStr = strings.TrimSpace(dateStr)
		if dateStr == "" {
			continue
		}
		for _, format := range dateFormats {
			if t, err := time.Parse(format, dateStr); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return 0
}
