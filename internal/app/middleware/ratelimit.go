package middleware

import (
	"net/http"
	"strconv"
	"time"

	httpError "github.com/IT-Nick/psytest/pkg/http"
	"github.com/go-chi/httprate"
)

// TooManyRequestsMessage ответ при превышении лимита
const TooManyRequestsMessage = "Слишком много запросов. Попробуйте позже."

// RateLimit ограничивает число запросов с одного IP за окно
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			httpError.ErrorResponse(w, http.StatusTooManyRequests, TooManyRequestsMessage)
		}),
	)
}
