package middleware

import (
	"net/http"
	"runtime"

	"github.com/IT-Nick/psytest/internal/infra/log"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// InternalErrorMessage ответ на непредвиденную ошибку
const InternalErrorMessage = "Внутренняя ошибка сервера"

// Recoverer перехватывает панику обработчика, пишет ее в лог и отвечает 500
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				buf := make([]byte, 8192)
				n := runtime.Stack(buf, false)

				logger := log.FromContext(r.Context())
				logger.Error().
					Str("event", "panic.recovered").
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic_value", rec).
					Str("stack_trace", string(buf[:n])).
					Msg("panic recovered in HTTP handler")

				httpError.ErrorResponse(w, http.StatusInternalServerError, InternalErrorMessage)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
