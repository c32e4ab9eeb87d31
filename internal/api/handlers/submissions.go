package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/afrowave-radio/backend/internal/api/response"
	"github.com/afrowave-radio/backend/internal/submissions"
)

// SubmissionsHandler serves the prototype submissions store
type SubmissionsHandler struct {
	store *submissions.Store
}

// NewSubmissionsHandler creates a new submissions handler
func NewSubmissionsHandler(store *submissions.Store) *SubmissionsHandler {
	return &SubmissionsHandler{
		store: store,
	}
}

// Create handles POST /api/v1/submissions
func (h *SubmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub submissions.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	created, err := h.store.Create(sub)
	if err != nil {
		if errors.Is(err, submissions.ErrInvalid) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "")
		return
	}

	response.Created(w, created)
}

// List handles GET /api/v1/submissions
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.List())
}
