package middleware

import (
	"github.com/go-chi/chi/v5"
)

// StackConfig настройки общего набора middleware
type StackConfig struct {
	AllowedOrigins []string
	EnableMetrics  bool
	EnableLogging  bool
}

// NewRouter chi-роутер с общим набором middleware
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	// 1. RequestID первым, чтобы и паника, и access log видели request_id
	r.Use(RequestID)
	// 2. Recoverer
	r.Use(Recoverer)
	// 3. CORS, чтобы preflight не доходил до обработчиков
	r.Use(CORS(cfg.AllowedOrigins))
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.EnableLogging {
		r.Use(Logging)
	}
	return r
}
