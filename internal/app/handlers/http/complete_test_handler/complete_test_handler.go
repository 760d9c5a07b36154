package complete_test_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// TestCompleter сохраняет завершение теста
type TestCompleter interface {
	Complete(ctx context.Context, user *model.User, testID int, req dto.CompleteTestRequest) (*dto.CompleteTestResponse, error)
}

// CompleteTestHandler структура для обработчика
type CompleteTestHandler struct {
	tests TestCompleter
}

// NewCompleteTestHandler создает новый экземпляр обработчика
func NewCompleteTestHandler(tests TestCompleter) *CompleteTestHandler {
	return &CompleteTestHandler{tests: tests}
}

// ServeHTTP принимает ответы на тест
func (h *CompleteTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	testID, err := handlerutil.PathID(r, "test_id")
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	var request dto.CompleteTestRequest
	if err := handlerutil.DecodeJSON(w, r, &request); err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	response, err := h.tests.Complete(r.Context(), handlerutil.CurrentUser(r), testID, request)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, response)
}
