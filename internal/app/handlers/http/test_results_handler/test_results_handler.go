package test_results_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// ResultSource результаты пройденных тестов
type ResultSource interface {
	Results(ctx context.Context, userID, testID int) (*dto.TestResult, error)
}

// TestResultsHandler структура для обработчика
type TestResultsHandler struct {
	tests ResultSource
}

// NewTestResultsHandler создает новый экземпляр обработчика
func NewTestResultsHandler(tests ResultSource) *TestResultsHandler {
	return &TestResultsHandler{tests: tests}
}

// ServeHTTP результат теста текущего пользователя
func (h *TestResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	testID, err := handlerutil.PathID(r, "test_id")
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	result, err := h.tests.Results(r.Context(), handlerutil.CurrentUser(r).ID, testID)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
