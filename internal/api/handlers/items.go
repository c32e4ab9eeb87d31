package handlers

import (
	"errors"
	"net/http"

	"github.com/afrowave-radio/backend/internal/api/request"
	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/feed"
	"github.com/afrowave-radio/backend/internal/middleware"
)

// ItemsHandler handles item lookup and type-bucket listing
type ItemsHandler struct {
	feedService *feed.Service
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(feedService *feed.Service) *ItemsHandler {
	return &ItemsHandler{
		feedService: feedService,
	}
}

// GetItem handles GET /api/v1/items/{id}
func (h *ItemsHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := request.GetURLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Item ID is required")
		return
	}

	item, err := h.feedService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			response.NotFound(w, "Item not found")
			return
		}
		writeFeedError(w, err)
		return
	}

	etag := response.ETag(item)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if match := r.Header.Get("If-None-Match"); match == etag {
		response.NotModified(w)
		return
	}

	response.Success(w, item)
}

// ListItems handles GET /api/v1/items?type=Episode&limit=&offset=
// Returns a paginated slice of one type bucket.
func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typ := request.GetQueryString(r, "type", string(feed.TypeEpisode))
	limit := request.GetQueryIntWithRange(r, "limit", feed.DefaultPageSize, 1, feed.MaxPageSize)
	offset := request.GetQueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, err := h.feedService.GetByType(ctx, typ)
	if err != nil {
		writeFeedError(w, err)
		return
	}

	total := len(items)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pagination := response.NewPagination(total, limit, offset)
	meta := response.NewMeta(
		middleware.GetRequestID(ctx),
		middleware.GetResponseTimeMs(ctx),
	)

	response.SuccessWithPagination(w, items[start:end], pagination, meta)
}
