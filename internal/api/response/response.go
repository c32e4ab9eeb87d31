// Package response writes the JSON envelopes the API serves.
package response

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
)

// APIResponse is the standard API response wrapper
type APIResponse struct {
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       *Meta       `json:"meta,omitempty"`
}

// Pagination contains pagination information
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// Meta contains request metadata
type Meta struct {
	RequestID    string `json:"request_id"`
	ResponseTime int64  `json:"response_time_ms"`
}

// Degraded is the envelope list endpoints return when no feed snapshot can
// be produced: explicitly empty items plus a machine-readable code, so the
// front end renders an empty-but-labeled state instead of crashing on a
// bare 5xx.
type Degraded struct {
	Items    []interface{} `json:"items"`
	Degraded bool          `json:"degraded"`
	Code     string        `json:"code"`
	Error    string        `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but don't try to write again
			return
		}
	}
}

// Success writes a success response with data
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{
		Data: data,
	})
}

// SuccessWithPagination writes a success response with pagination
func SuccessWithPagination(w http.ResponseWriter, data interface{}, pagination *Pagination, meta *Meta) {
	JSON(w, http.StatusOK, APIResponse{
		Data:       data,
		Pagination: pagination,
		Meta:       meta,
	})
}

// Error writes an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIResponse{
		Error: message,
	})
}

// NotFound writes a 404 not found response
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

// BadRequest writes a 400 bad request response
func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message)
}

// InternalError writes a 500 internal server error response
func InternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message)
}

// TooManyRequests writes a 429 rate limit exceeded response
func TooManyRequests(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Rate limit exceeded"
	}
	Error(w, http.StatusTooManyRequests, message)
}

// ServiceDegraded writes a 503 with the degraded envelope.
func ServiceDegraded(w http.ResponseWriter, code, message string) {
	JSON(w, http.StatusServiceUnavailable, Degraded{
		Items:    []interface{}{},
		Degraded: true,
		Code:     code,
		Error:    message,
	})
}

// Created writes a 201 created response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, APIResponse{
		Data: data,
	})
}

// NotModified writes a 304 not modified response
func NotModified(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotModified)
}

// NewPagination creates a new pagination struct
func NewPagination(total, limit, offset int) *Pagination {
	return &Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// NewMeta creates a new meta struct
func NewMeta(requestID string, responseTimeMs int64) *Meta {
	return &Meta{
		RequestID:    requestID,
		ResponseTime: responseTimeMs,
	}
}

// ETag returns a hash of the data for ETag support
func ETag(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}
