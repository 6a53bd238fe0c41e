package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter records what the handler chain wrote so the access log can
// report it.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.written += n
	return n, err
}

// Unwrap exposes the wrapped ResponseWriter so http.NewResponseController
// can reach Flusher/Hijacker through the middleware chain.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// slowRequestThreshold separates routine traffic from requests worth a warn
// line. Roster PDF exports render a headless browser page and routinely take
// seconds.
const slowRequestThreshold = 5 * time.Second

// Logger emits one access-log line per request, keyed by the request id the
// RequestID middleware assigned.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", elapsed.Milliseconds(),
				"bytes", sw.written,
				"remote", r.RemoteAddr,
				"request_id", GetRequestID(r.Context()),
			}
			if elapsed > slowRequestThreshold {
				logger.Warn("slow http request", attrs...)
				return
			}
			logger.Info("http request", attrs...)
		})
	}
}
