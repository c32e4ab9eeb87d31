package feed

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Parser turns raw feed markup into channel metadata plus a raw item list.
// It wraps gofeed and lifts the podcast extension fields (iTunes author,
// duration, episode numbers, media enclosure, thumbnail) out of the generic
// extension bags into named RawItem fields, so the normalizer never probes
// dynamic maps.
type Parser struct {
	inner *gofeed.Parser
}

// ParsedFeed is the parser output.
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Items       []RawItem
}

// NewParser creates a feed parser.
func NewParser() *Parser {
	return &Parser{inner: gofeed.NewParser()}
}

// Parse parses RSS or Atom markup. A body that is not well-formed feed markup
// yields a ParseError, distinct from a fetch failure.
func (p *Parser) Parse(data []byte) (*ParsedFeed, error) {
	gf, err := p.inner.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	parsed := &ParsedFeed{
		Title:       gf.Title,
		Description: gf.Description,
		Link:        gf.Link,
		Items:       make([]RawItem, 0, len(gf.Items)),
	}
	for _, item := range gf.Items {
		parsed.Items = append(parsed.Items, convertItem(item))
	}

	return parsed, nil
}

func convertItem(item *gofeed.Item) RawItem {
	raw := RawItem{
		GUID:            item.GUID,
		Title:           strings.TrimSpace(item.Title),
		Link:            strings.TrimSpace(item.Link),
		Description:     item.Description,
		Content:         item.Content,
		Published:       item.Published,
		Updated:         item.Updated,
		PublishedParsed: item.PublishedParsed,
		UpdatedParsed:   item.UpdatedParsed,
		Categories:      item.Categories,
	}

	if item.Author != nil {
		raw.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		raw.Author = item.Authors[0].Name
	}

	if itunes := item.ITunesExt; itunes != nil {
		if raw.Author == "" {
			raw.Author = itunes.Author
		}
		if raw.Description == "" {
			raw.Description = itunes.Summary
		}
		if raw.Description == "" {
			raw.Description = itunes.Subtitle
		}
		raw.Duration = itunes.Duration
		raw.EpisodeNumber = itunes.Episode
		raw.SeasonNumber = itunes.Season
		raw.Explicit = itunes.Explicit
		raw.ImageURL = itunes.Image
	}

	if raw.ImageURL == "" && item.Image != nil {
		raw.ImageURL = item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			raw.EnclosureURL = enc.URL
			raw.EnclosureType = enc.Type
			break
		}
	}

	raw.MediaURL, raw.MediaType = mediaContent(item)
	if raw.ImageURL == "" {
		raw.ImageURL = mediaThumbnail(item)
	}

	return raw
}

// mediaContent pulls the first media:content URL out of the extension bag.
// It is the fallback audio source when an item has no RSS enclosure.
func mediaContent(item *gofeed.Item) (string, string) {
	media, ok := item.Extensions["media"]
	if !ok {
		return "", ""
	}
	for _, ext := range media["content"] {
		if url := ext.Attrs["url"]; url != "" {
			return url, ext.Attrs["type"]
		}
	}
	return "", ""
}

func mediaThumbnail(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media["thumbnail"] {
		if url := ext.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}
