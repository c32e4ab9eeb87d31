// Package feed ingests the station's podcast RSS feed and serves it to the
// API layer. Raw feed markup is fetched from the primary source (falling back
// to mirrors), parsed, normalized into a canonical item shape, indexed, and
// held in a TTL cache so concurrent requests share one upstream fetch.
package feed

import "time"

// ContentType classifies a feed item into one of the site's content buckets.
type ContentType string

const (
	TypeEpisode ContentType = "Episode"
	TypeFeature ContentType = "Feature"
	TypeEvent   ContentType = "Event"
	TypeProgram ContentType = "Program"
)

// ContentTypes lists every bucket a snapshot carries.
var ContentTypes = []ContentType{TypeEpisode, TypeFeature, TypeEvent, TypeProgram}

// RawItem is a single entry as the parser surfaced it, before normalization.
// Any field may be empty; the normalizer owns all defaulting.
type RawItem struct {
	GUID            string
	Title           string
	Link            string
	Description     string
	Content         string
	Published       string
	Updated         string
	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
	Categories      []string
	Author          string
	ImageURL        string
	Duration        string
	EpisodeNumber   string
	SeasonNumber    string
	Explicit        string
	EnclosureURL    string
	EnclosureType   string
	MediaURL        string
	MediaType       string
}

// Item is the canonical item shape served to callers. It is immutable once
// built: a refresh replaces the whole snapshot rather than mutating items.
type Item struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Content       string      `json:"content,omitempty"`
	Link          string      `json:"link"`
	Author        string      `json:"author"`
	PubDate       string      `json:"pubDate,omitempty"`
	ISODate       string      `json:"isoDate,omitempty"`
	PublishedAt   int64       `json:"publishedAt"`
	Categories    []string    `json:"categories"`
	Type          ContentType `json:"type"`
	Region        string      `json:"region,omitempty"`
	Genre         string      `json:"genre,omitempty"`
	Image         string      `json:"image,omitempty"`
	AudioURL      string      `json:"audioUrl,omitempty"`
	AudioType     string      `json:"audioType,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	EpisodeNumber string      `json:"episodeNumber,omitempty"`
	SeasonNumber  string      `json:"seasonNumber,omitempty"`

	// Denormalized lookup fields, computed once at normalization time so
	// queries never re-lowercase item text. Unexported so they cannot leak
	// into the JSON shape callers receive.
	searchBlob string
	typeKey    string
	regionKey  string
	genreKey   string
}

// Snapshot is one immutable, fully indexed copy of the feed. A refresh builds
// a brand-new snapshot and swaps the reference; readers never observe a
// snapshot being mutated.
type Snapshot struct {
	Title       string
	Description string
	Link        string
	Items       []*Item
	ByID        map[string]*Item
	ByType      map[ContentType][]*Item
	FetchedAt   time.Time
}
