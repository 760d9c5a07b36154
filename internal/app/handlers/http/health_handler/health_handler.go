package health_handler

import (
	"context"
	"net/http"
	"time"

	"github.com/IT-Nick/psytest/internal/infra/log"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// Версия API и имя сервиса в ответах
const (
	Version     = "2.0.0"
	ServiceName = "psycho-tests-backend"
)

// Pinger проверка доступности базы
type Pinger interface {
	Ping(ctx context.Context) error
}

// RootHandler приветственный ответ на "/"
type RootHandler struct{}

// ServeHTTP метод для обработки запроса
func (RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpError.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "API системы психологического тестирования",
		"version": Version,
		"docs":    "/docs",
	})
}

// HealthHandler структура для обработчика
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler создает новый экземпляр обработчика. db может быть nil.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// ServeHTTP отвечает 503, если база недоступна
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			log.FromContext(r.Context()).Warn().Err(err).Msg("health check: database unavailable")
			httpError.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unhealthy",
				"service": ServiceName,
				"message": "База данных недоступна",
				"version": Version,
			})
			return
		}
	}

	httpError.JSONResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"message": "API работает корректно",
		"version": Version,
	})
}
