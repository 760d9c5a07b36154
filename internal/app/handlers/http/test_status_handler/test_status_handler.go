package test_status_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// StatusSource статусы тестов пользователя
type StatusSource interface {
	Statuses(ctx context.Context, userID int) ([]dto.TestStatus, error)
}

// TestStatusHandler структура для обработчика
type TestStatusHandler struct {
	tests StatusSource
}

// NewTestStatusHandler создает новый экземпляр обработчика
func NewTestStatusHandler(tests StatusSource) *TestStatusHandler {
	return &TestStatusHandler{tests: tests}
}

// ServeHTTP статус каждого доступного теста для текущего пользователя
func (h *TestStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := handlerutil.CurrentUser(r)

	statuses, err := h.tests.Statuses(r.Context(), user.ID)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, statuses)
}
