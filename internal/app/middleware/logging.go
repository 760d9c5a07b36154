package middleware

import (
	"net/http"
	"time"

	"github.com/IT-Nick/psytest/internal/infra/log"
)

// Logging пишет строку журнала на каждый запрос
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)

		next.ServeHTTP(sw, r)

		logger := log.FromContext(r.Context())
		event := logger.Info()
		if sw.status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if sw.status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.
			Str("event", "http.request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Str("remote_addr", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
