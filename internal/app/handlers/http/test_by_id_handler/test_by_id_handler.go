package test_by_id_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/app/handlers/http/tests_handler"
	"github.com/IT-Nick/psytest/internal/domain/model"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// TestGetter источник одного теста
type TestGetter interface {
	GetAvailableByID(ctx context.Context, testID int) (*model.Test, error)
}

// TestByIDHandler структура для обработчика
type TestByIDHandler struct {
	tests TestGetter
}

// NewTestByIDHandler создает новый экземпляр обработчика
func NewTestByIDHandler(tests TestGetter) *TestByIDHandler {
	return &TestByIDHandler{tests: tests}
}

// ServeHTTP доступный тест по id
func (h *TestByIDHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	testID, err := handlerutil.PathID(r, "test_id")
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	test, err := h.tests.GetAvailableByID(r.Context(), testID)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, tests_handler.ToResponse(*test))
}
