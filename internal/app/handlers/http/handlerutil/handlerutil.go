// Package handlerutil общие функции HTTP-обработчиков: разбор запроса
// и перевод ошибок домена в ответы API.
package handlerutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/IT-Nick/psytest/internal/app/middleware"
	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/model"
	testsService "github.com/IT-Nick/psytest/internal/domain/tests/service"
	usersService "github.com/IT-Nick/psytest/internal/domain/users/service"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/IT-Nick/psytest/internal/infra/log"
	httpError "github.com/IT-Nick/psytest/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxBodySize = 1 << 20

// DecodeJSON читает тело запроса в v. Ошибка разбора возвращается как validation.Errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var errs validation.Errors
		errs.Add("body", "Некорректный JSON: "+err.Error())
		return errs
	}
	return nil
}

// PathID целочисленный параметр пути
func PathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		var errs validation.Errors
		errs.Add(name, "Значение должно быть целым числом")
		return 0, errs
	}
	return id, nil
}

// CurrentUser пользователь, положенный в контекст middleware.Authenticator
func CurrentUser(r *http.Request) *model.User {
	user, _ := middleware.UserFromContext(r.Context())
	return user
}

// WriteError отвечает статусом, соответствующим ошибке
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		httpError.ValidationResponse(w, verrs.Details())
	case errors.Is(err, usersService.ErrInvalidCredentials):
		httpError.UnauthorizedResponse(w, err.Error())
	case errors.Is(err, usersService.ErrUserExists),
		errors.Is(err, testsService.ErrAlreadyCompleted),
		errors.Is(err, testsService.ErrTestExists):
		httpError.ErrorResponse(w, http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, testsService.ErrTestNotAvailable),
		errors.Is(err, testsService.ErrTestNotFound),
		errors.Is(err, testsService.ErrResultsNotFound),
		errors.Is(err, usersService.ErrUserNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, definitions.ErrNotFound), errors.Is(err, definitions.ErrInvalidFilename):
		httpError.ErrorResponse(w, http.StatusNotFound, "Файл теста не найден")
	default:
		logger := log.FromContext(r.Context())
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if isDatabaseError(err) {
			httpError.ErrorResponse(w, http.StatusInternalServerError, middleware.DatabaseMessage)
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, middleware.InternalErrorMessage)
	}
}

// rootMessage текст sentinel-ошибки без обертки
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func isDatabaseError(err error) bool {
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	return errors.As(err, &pgErr) || errors.As(err, &connErr) || pgconn.Timeout(err)
}
