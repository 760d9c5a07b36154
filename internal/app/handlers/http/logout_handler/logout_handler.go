package logout_handler

import (
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/middleware"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/revocation"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// MessageLoggedOut ответ на выход
const MessageLoggedOut = "Успешный выход из системы"

// LogoutHandler структура для обработчика
type LogoutHandler struct {
	revoked      revocation.Store
	secureCookie bool
}

// NewLogoutHandler создает новый экземпляр обработчика
func NewLogoutHandler(revoked revocation.Store, secureCookie bool) *LogoutHandler {
	return &LogoutHandler{revoked: revoked, secureCookie: secureCookie}
}

// ServeHTTP удаляет cookie и отзывает токен, если запрос был с валидным токеном.
// Выход без токена тоже успешен.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if err := h.revoked.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			log.FromContext(r.Context()).Error().Err(err).Msg("failed to revoke token")
		}
	}

	auth.ClearCookie(w, h.secureCookie)
	httpError.JSONResponse(w, http.StatusOK, dto.MessageResponse{Message: MessageLoggedOut})
}
