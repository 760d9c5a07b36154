package register_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/metrics"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// UserRegistrar регистрирует пользователей
type UserRegistrar interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
}

// RegisterHandler структура для обработчика
type RegisterHandler struct {
	users        UserRegistrar
	tokens       *auth.TokenManager
	secureCookie bool
}

// NewRegisterHandler создает новый экземпляр обработчика
func NewRegisterHandler(users UserRegistrar, tokens *auth.TokenManager, secureCookie bool) *RegisterHandler {
	return &RegisterHandler{users: users, tokens: tokens, secureCookie: secureCookie}
}

// ServeHTTP регистрирует студента и сразу выдает токен
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.RegisterRequest
	if err := handlerutil.DecodeJSON(w, r, &request); err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), request)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	metrics.RecordRegistration()

	response, err := handlerutil.StartSession(w, h.tokens, user, h.secureCookie)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, response)
}
