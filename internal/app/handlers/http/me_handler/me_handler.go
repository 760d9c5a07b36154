package me_handler

import (
	"context"
	"net/http"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	httpError "github.com/IT-Nick/psytest/pkg/http"
)

// CompletedTests источник пройденных тестов
type CompletedTests interface {
	Completed(ctx context.Context, userID int) ([]dto.CompletedTestInfo, error)
}

// MeHandler структура для обработчика
type MeHandler struct {
	tests CompletedTests
}

// NewMeHandler создает новый экземпляр обработчика
func NewMeHandler(tests CompletedTests) *MeHandler {
	return &MeHandler{tests: tests}
}

// ServeHTTP профиль текущего пользователя
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := handlerutil.CurrentUser(r)

	completed, err := h.tests.Completed(r.Context(), user.ID)
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.UserResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		MiddleName:     user.MiddleName,
		Faculty:        user.Faculty,
		Course:         user.Course,
		CreatedAt:      user.CreatedAt,
		CompletedTests: completed,
	})
}
