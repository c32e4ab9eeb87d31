package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/afrowave-radio/backend/internal/api/response"
)

// Recoverer converts a handler panic into a logged 500 so one bad request
// cannot take the process down.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[http] %s PANIC: %v\n%s", GetRequestID(r.Context()), rec, debug.Stack())
				response.InternalError(w, "An unexpected error occurred")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
