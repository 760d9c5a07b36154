package test_results_handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IT-Nick/psytest/internal/app/middleware"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	testsService "github.com/IT-Nick/psytest/internal/domain/tests/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResults struct{}

func (fakeResults) Results(_ context.Context, userID, testID int) (*dto.TestResult, error) {
	switch testID {
	case 1:
		return &dto.TestResult{TestID: 1, TestTitle: "Опросник", Result: map[string]any{"user": userID}, CompletedAt: time.Now()}, nil
	case 2:
		return nil, testsService.ErrResultsNotFound
	}
	return nil, testsService.ErrTestNotFound
}

func TestTestResultsHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), &model.User{ID: 9}, nil)))
		})
	})
	r.Method(http.MethodGet, "/user-tests/{test_id}/results", NewTestResultsHandler(fakeResults{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user-tests/1/results", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.TestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Опросник", res.TestTitle)
	assert.EqualValues(t, 9, res.Result["user"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user-tests/2/results", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Тест не завершен")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user-tests/3/results", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
