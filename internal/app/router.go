package app

import (
	"net/http"
	"time"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/complete_test_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/login_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/logout_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/me_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/register_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/static_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/test_by_id_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/test_results_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/test_status_handler"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/tests_handler"
	"github.com/IT-Nick/psytest/internal/app/middleware"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/revocation"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService операции над пользователями, нужные HTTP API
type UserService interface {
	register_handler.UserRegistrar
	login_handler.UserAuthenticator
	middleware.UserLoader
}

// TestService операции над тестами, нужные HTTP API
type TestService interface {
	tests_handler.TestLister
	test_by_id_handler.TestGetter
	test_status_handler.StatusSource
	complete_test_handler.TestCompleter
	test_results_handler.ResultSource
	me_handler.CompletedTests
}

// RouterDeps зависимости HTTP API
type RouterDeps struct {
	Users          UserService
	Tests          TestService
	Tokens         *auth.TokenManager
	Revoked        revocation.Store
	Definitions    static_handler.PathResolver
	DB             health_handler.Pinger
	AllowedOrigins []string
	CookieSecure   bool
	AuthPerMinute  int
	AccessLog      bool
}

// NewRouter собирает маршруты API
func NewRouter(deps RouterDeps) http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		AllowedOrigins: deps.AllowedOrigins,
		EnableMetrics:  true,
		EnableLogging:  deps.AccessLog,
	})
	authn := middleware.NewAuthenticator(deps.Tokens, deps.Revoked, deps.Users)

	r.Method(http.MethodGet, "/", health_handler.RootHandler{})
	r.Method(http.MethodGet, "/health", health_handler.NewHealthHandler(deps.DB))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(deps.AuthPerMinute, time.Minute))
			r.Method(http.MethodPost, "/register", register_handler.NewRegisterHandler(deps.Users, deps.Tokens, deps.CookieSecure))
			r.Method(http.MethodPost, "/login", login_handler.NewLoginHandler(deps.Users, deps.Tokens, deps.CookieSecure))
		})
		r.With(authn.Optional).Method(http.MethodPost, "/logout", logout_handler.NewLogoutHandler(deps.Revoked, deps.CookieSecure))
		r.With(authn.Required).Method(http.MethodGet, "/me", me_handler.NewMeHandler(deps.Tests))
	})

	r.Route("/tests", func(r chi.Router) {
		r.Method(http.MethodGet, "/", tests_handler.NewTestsHandler(deps.Tests, false))
		r.Method(http.MethodGet, "/available", tests_handler.NewTestsHandler(deps.Tests, true))
		r.Method(http.MethodGet, "/{test_id}", test_by_id_handler.NewTestByIDHandler(deps.Tests))
	})

	r.Route("/user-tests", func(r chi.Router) {
		r.Use(authn.Required)
		r.Method(http.MethodGet, "/status", test_status_handler.NewTestStatusHandler(deps.Tests))
		r.Method(http.MethodPost, "/{test_id}/complete", complete_test_handler.NewCompleteTestHandler(deps.Tests))
		r.Method(http.MethodGet, "/{test_id}/results", test_results_handler.NewTestResultsHandler(deps.Tests))
	})

	r.Method(http.MethodGet, "/static/{filename}", static_handler.NewStaticHandler(deps.Definitions))

	return r
}
