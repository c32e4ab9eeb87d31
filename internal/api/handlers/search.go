package handlers

import (
	"net/http"
	"net/url"

	"github.com/afrowave-radio/backend/internal/api/request"
	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/feed"
)

// SearchHandler handles feed search requests
type SearchHandler struct {
	feedService *feed.Service
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(feedService *feed.Service) *SearchHandler {
	return &SearchHandler{
		feedService: feedService,
	}
}

// decoratedItem wraps an item with the routing hints the UI uses to link a
// result. The hints belong to this layer, not the feed core.
type decoratedItem struct {
	*feed.Item
	Href     string `json:"href"`
	External bool   `json:"external"`
}

// searchResponse mirrors feed.SearchResult with decorated items.
type searchResponse struct {
	Items    []decoratedItem    `json:"items"`
	Count    int                `json:"count"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	HasMore  bool               `json:"hasMore"`
	Query    string             `json:"query"`
	Filters  feed.SearchFilters `json:"filters"`
}

// Search handles GET /api/v1/search?q=&type=&region=&genre=&dateFrom=&dateTo=&page=&pageSize=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := request.GetQueryString(r, "q", "")
	filters := feed.SearchFilters{
		Type:     request.GetQueryString(r, "type", ""),
		Region:   request.GetQueryString(r, "region", ""),
		Genre:    request.GetQueryString(r, "genre", ""),
		DateFrom: request.GetQueryTime(r, "dateFrom"),
		DateTo:   request.GetQueryTime(r, "dateTo"),
	}
	page := feed.PageRequest{
		Page:     request.GetQueryIntWithRange(r, "page", 1, 1, 1<<20),
		PageSize: request.GetQueryIntWithRange(r, "pageSize", feed.DefaultPageSize, 1, feed.MaxPageSize),
	}

	result, err := h.feedService.Search(r.Context(), query, filters, page)
	if err != nil {
		writeFeedError(w, err)
		return
	}

	decorated := make([]decoratedItem, len(result.Items))
	for i, item := range result.Items {
		decorated[i] = decorate(item)
	}

	resp := searchResponse{
		Items:    decorated,
		Count:    result.Count,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		HasMore:  result.HasMore,
		Query:    result.Query,
		Filters:  result.Filters,
	}

	etag := response.ETag(resp)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=60")
	if match := r.Header.Get("If-None-Match"); match == etag {
		response.NotModified(w)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// decorate computes the routing hint for one item. Episode, feature, and
// program results route to site pages; events route to the item's own link
// because event detail pages live on the calendar host.
func decorate(item *feed.Item) decoratedItem {
	d := decoratedItem{Item: item}
	switch item.Type {
	case feed.TypeFeature:
		d.Href = "/features/" + url.PathEscape(item.ID)
	case feed.TypeProgram:
		d.Href = "/programs/" + url.PathEscape(item.ID)
	case feed.TypeEvent:
		if item.Link != "" {
			d.Href = item.Link
			d.External = true
		} else {
			d.Href = "/events/" + url.PathEscape(item.ID)
		}
	default:
		d.Href = "/episodes/" + url.PathEscape(item.ID)
	}
	return d
}
