package middleware

import (
	"context"
	"net/http"
	"time"
)

type timingKey struct{}

// Timing records the request start time in the context so handlers can
// report elapsed time in their response metadata.
func Timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), timingKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetResponseTimeMs returns milliseconds elapsed since the request entered
// the middleware chain, or 0 outside it.
func GetResponseTimeMs(ctx context.Context) int64 {
	start, ok := ctx.Value(timingKey{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start).Milliseconds()
}
