package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	testsRepo "github.com/IT-Nick/psytest/internal/domain/tests/repository"
	testsService "github.com/IT-Nick/psytest/internal/domain/tests/service"
	"github.com/IT-Nick/psytest/internal/domain/users/repository"
	"github.com/IT-Nick/psytest/internal/domain/users/service"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/config"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/notifier"
	"github.com/IT-Nick/psytest/internal/infra/revocation"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	userService *service.UserService
	testService *testsService.TestService
}

type App struct {
	config   *config.Config
	db       *pgxpool.Pool
	loader   *definitions.Loader
	notifier *notifier.Notifier
	logger   zerolog.Logger

	Services
}

// Option настройка App
type Option func(*App) error

// WithNotifier включает уведомления в Telegram
func WithNotifier() Option {
	return func(app *App) error {
		n, err := notifier.New(app.config.TelegramBot.Token, app.config.TelegramBot.AdminChatIDs)
		if err != nil {
			return fmt.Errorf("notifier.New: %w", err)
		}
		app.notifier = n
		return nil
	}
}

// NewApp подключается к базе и собирает сервисы
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
		loader: definitions.NewLoader(cfg.Definitions.Dir),
		logger: log.WithComponent("app"),
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	db, err := InitDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	app.initServices()

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	userRepo := repository.NewUserRepository(app.db)
	testRepo := testsRepo.NewTestRepository(app.db)

	app.userService = service.NewUserService(userRepo)
	if app.notifier != nil {
		app.testService = testsService.NewTestService(testRepo, app.loader, app.notifier)
	} else {
		app.testService = testsService.NewTestService(testRepo, app.loader, nil)
	}
}

// Users сервис пользователей
func (app *App) Users() *service.UserService {
	return app.userService
}

// Tests сервис тестов
func (app *App) Tests() *testsService.TestService {
	return app.testService
}

// Definitions загрузчик файлов с вопросами
func (app *App) Definitions() *definitions.Loader {
	return app.loader
}

// Migrate создает схему базы
func (app *App) Migrate(ctx context.Context) error {
	return Migrate(ctx, app.db)
}

// Close закрывает пул соединений
func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
	}
}

func (app *App) revocationStore(ctx context.Context) (revocation.Store, func(), error) {
	if app.config.Redis.Addr == "" {
		app.logger.Info().Msg("redis is not configured, revoked tokens are kept in memory")
		return revocation.NewMemoryStore(), func() {}, nil
	}
	store, err := revocation.NewRedisStore(ctx, revocation.RedisConfig{
		Addr:     app.config.Redis.Addr,
		Password: app.config.Redis.Password,
		DB:       app.config.Redis.DB,
	}, log.WithComponent("revocation"))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// Handler HTTP API приложения
func (app *App) Handler(revoked revocation.Store) http.Handler {
	return NewRouter(RouterDeps{
		Users:          app.userService,
		Tests:          app.testService,
		Tokens:         auth.NewTokenManager(app.config.Auth.SecretKey, app.config.TokenTTL()),
		Revoked:        revoked,
		Definitions:    app.loader,
		DB:             app.db,
		AllowedOrigins: app.config.Server.CORSOrigins,
		CookieSecure:   app.config.Auth.CookieSecure,
		AuthPerMinute:  app.config.RateLimit.LoginPerMinute,
		AccessLog:      true,
	})
}

// ListenAndServe запускает HTTP сервер, бота и наблюдение за файлами тестов.
// Возвращается после отмены ctx и остановки сервера.
func (app *App) ListenAndServe(ctx context.Context) error {
	revoked, closeStore, err := app.revocationStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to init revocation store: %w", err)
	}
	defer closeStore()

	server := &http.Server{
		Addr:              app.config.Addr(),
		Handler:           app.Handler(revoked),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error().Err(err).Msg("HTTP server shutdown error")
		}
		return nil
	})

	if app.config.Definitions.Watch {
		g.Go(func() error {
			// файлы тестов необязательны для работы API
			if err := app.loader.Watch(ctx); err != nil {
				app.logger.Warn().Err(err).Msg("definitions watcher stopped")
			}
			return nil
		})
	}

	if app.notifier != nil {
		g.Go(func() error {
			return app.notifier.Run(ctx)
		})
	}

	err = g.Wait()
	app.logger.Info().Msg("stopped")
	return err
}
