package middleware

import (
	"log"
	"net/http"
	"time"
)

// responseWriter captures the status code and body size for the access log.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Logger writes one access-log line per request, tagged with the request id
// so a slow or failing request can be tied back to its handler logs.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf("[http] %s %s %s %d %dB %s",
			GetRequestID(r.Context()),
			r.Method,
			r.URL.Path,
			wrapped.status,
			wrapped.size,
			time.Since(start).Round(time.Microsecond),
		)
	})
}
