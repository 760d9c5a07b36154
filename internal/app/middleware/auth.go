package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/IT-Nick/psytest/internal/domain/model"
	usersService "github.com/IT-Nick/psytest/internal/domain/users/service"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/revocation"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// Тексты ошибок аутентификации
const (
	CredentialsMessage = "Не удалось проверить учетные данные"
	DatabaseMessage    = "Ошибка базы данных"
)

var ErrUnauthorized = errors.New("unauthorized")

// UserLoader загружает пользователя по id из токена
type UserLoader interface {
	GetByID(ctx context.Context, userID int) (*model.User, error)
}

type ctxKey int

const (
	userKey ctxKey = iota
	claimsKey
)

// Authenticator проверяет токен и кладет пользователя в контекст
type Authenticator struct {
	tokens  *auth.TokenManager
	revoked revocation.Store
	users   UserLoader
}

// NewAuthenticator создает Authenticator
func NewAuthenticator(tokens *auth.TokenManager, revoked revocation.Store, users UserLoader) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked, users: users}
}

// Authenticate возвращает пользователя и claims запроса.
// ErrUnauthorized означает отсутствующий, неверный или отозванный токен.
func (a *Authenticator) Authenticate(r *http.Request) (*model.User, *auth.Claims, error) {
	token := auth.ExtractToken(r)
	if token == "" {
		return nil, nil, fmt.Errorf("%w: no token", ErrUnauthorized)
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	revoked, err := a.revoked.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: token revoked", ErrUnauthorized)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := a.users.GetByID(r.Context(), userID)
	if err != nil {
		// пользователь удален, а токен еще жив
		if errors.Is(err, usersService.ErrUserNotFound) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: user %d not found", ErrUnauthorized, userID)
	}
	return user, claims, nil
}

// Required пропускает только аутентифицированные запросы
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, claims, err := a.Authenticate(r)
		if err != nil {
			logger := log.FromContext(r.Context())
			if errors.Is(err, ErrUnauthorized) {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
				httpError.UnauthorizedResponse(w, CredentialsMessage)
				return
			}
			logger.Error().Err(err).Msg("authentication failed")
			httpError.ErrorResponse(w, http.StatusInternalServerError, DatabaseMessage)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user, claims)))
	})
}

// Optional кладет пользователя в контекст, если токен валиден, и никогда не отклоняет запрос
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, claims, err := a.Authenticate(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser сохраняет пользователя и claims в контексте
func WithUser(ctx context.Context, user *model.User, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// UserFromContext пользователь текущего запроса
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// ClaimsFromContext claims токена текущего запроса
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
