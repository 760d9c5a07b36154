package login_handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	usersService "github.com/IT-Nick/psytest/internal/domain/users/service"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/metrics"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// UserAuthenticator проверяет учетные данные
type UserAuthenticator interface {
	Authenticate(ctx context.Context, req dto.LoginRequest) (*model.User, error)
}

// LoginHandler структура для обработчика
type LoginHandler struct {
	users        UserAuthenticator
	tokens       *auth.TokenManager
	secureCookie bool
}

// NewLoginHandler создает новый экземпляр обработчика
func NewLoginHandler(users UserAuthenticator, tokens *auth.TokenManager, secureCookie bool) *LoginHandler {
	return &LoginHandler{users: users, tokens: tokens, secureCookie: secureCookie}
}

// ServeHTTP проверяет ФИО, факультет, курс и пароль и выдает токен
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.LoginRequest
	if err := handlerutil.DecodeJSON(w, r, &request); err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), request)
	if err != nil {
		if errors.Is(err, usersService.ErrInvalidCredentials) {
			metrics.RecordLogin(false)
			log.FromContext(r.Context()).Info().Str("faculty", request.Faculty).Msg("login rejected")
		}
		handlerutil.WriteError(w, r, err)
		return
	}
	metrics.RecordLogin(true)

	response, err := handlerutil.StartSession(w, h.tokens, user, h.secureCookie)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, response)
}
