package tests_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// TestLister источник списка тестов
type TestLister interface {
	ListAll(ctx context.Context) ([]model.Test, error)
	ListAvailable(ctx context.Context) ([]model.Test, error)
}

// TestsHandler список тестов: всех или только доступных
type TestsHandler struct {
	tests         TestLister
	onlyAvailable bool
}

// NewTestsHandler создает новый экземпляр обработчика
func NewTestsHandler(tests TestLister, onlyAvailable bool) *TestsHandler {
	return &TestsHandler{tests: tests, onlyAvailable: onlyAvailable}
}

// ServeHTTP метод для обработки запроса
func (h *TestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		tests []model.Test
		err   error
	)
	if h.onlyAvailable {
		tests, err = h.tests.ListAvailable(r.Context())
	} else {
		tests, err = h.tests.ListAll(r.Context())
	}
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	response := make([]dto.TestResponse, 0, len(tests))
	for _, t := range tests {
		response = append(response, ToResponse(t))
	}
	httpError.JSONResponse(w, http.StatusOK, response)
}

// ToResponse тест в формате API
func ToResponse(t model.Test) dto.TestResponse {
	return dto.TestResponse{
		ID:          t.ID,
		Filename:    t.Filename,
		IsAvailable: t.IsAvailable,
		CreatedAt:   t.CreatedAt,
	}
}
