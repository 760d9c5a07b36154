package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	testsService "github.com/IT-Nick/psytest/internal/domain/tests/service"
	usersService "github.com/IT-Nick/psytest/internal/domain/users/service"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/revocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	user *model.User
}

func (s stubUsers) Register(_ context.Context, req dto.RegisterRequest) (*model.User, error) {
	if req.LastName == s.user.LastName {
		return nil, usersService.ErrUserExists
	}
	return &model.User{ID: 2, FirstName: req.FirstName, LastName: req.LastName, MiddleName: req.MiddleName}, nil
}

func (s stubUsers) Authenticate(_ context.Context, req dto.LoginRequest) (*model.User, error) {
	if req.Password != "secret1" {
		return nil, usersService.ErrInvalidCredentials
	}
	return s.user, nil
}

func (s stubUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return nil, usersService.ErrUserNotFound
}

type stubTests struct{}

var available = model.Test{ID: 1, Filename: "questions.json", IsAvailable: true}

func (stubTests) ListAll(context.Context) ([]model.Test, error) {
	return []model.Test{available, {ID: 2, Filename: "off.json"}}, nil
}

func (stubTests) ListAvailable(context.Context) ([]model.Test, error) {
	return []model.Test{available}, nil
}

func (stubTests) GetAvailableByID(_ context.Context, id int) (*model.Test, error) {
	if id != available.ID {
		return nil, testsService.ErrTestNotAvailable
	}
	t := available
	return &t, nil
}

func (stubTests) Statuses(context.Context, int) ([]dto.TestStatus, error) {
	return []dto.TestStatus{{TestID: 1, TestTitle: "Опросник", Status: model.StatusNotStarted}}, nil
}

func (stubTests) Complete(_ context.Context, _ *model.User, testID int, _ dto.CompleteTestRequest) (*dto.CompleteTestResponse, error) {
	return &dto.CompleteTestResponse{Message: testsService.MessageCompleted, TestID: testID, Result: map[string]any{}}, nil
}

func (stubTests) Results(context.Context, int, int) (*dto.TestResult, error) {
	return nil, testsService.ErrResultsNotFound
}

func (stubTests) Completed(context.Context, int) ([]dto.CompletedTestInfo, error) {
	return []dto.CompletedTestInfo{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "questions.json"), []byte(`[{"title":"T"},{"question":"1?"}]`), 0o644))

	return NewRouter(RouterDeps{
		Users:          stubUsers{user: &model.User{ID: 1, FirstName: "Иван", LastName: "Петров", MiddleName: "Иванович"}},
		Tests:          stubTests{},
		Tokens:         auth.NewTokenManager("secret", time.Hour),
		Revoked:        revocation.NewMemoryStore(),
		Definitions:    definitions.NewLoader(dir),
		AllowedOrigins: []string{"http://localhost:5173"},
		AuthPerMinute:  100,
	})
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newTestRouter(t)

	for _, tc := range []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/tests", http.StatusOK},
		{http.MethodGet, "/tests/", http.StatusOK},
		{http.MethodGet, "/tests/available", http.StatusOK},
		{http.MethodGet, "/tests/1", http.StatusOK},
		{http.MethodGet, "/tests/2", http.StatusNotFound},
		{http.MethodGet, "/tests/abc", http.StatusUnprocessableEntity},
		{http.MethodGet, "/static/questions.json", http.StatusOK},
		{http.MethodGet, "/static/nope.json", http.StatusNotFound},
		{http.MethodGet, "/user-tests/status", http.StatusUnauthorized},
		{http.MethodGet, "/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/auth/logout", http.StatusOK},
	} {
		rec := do(h, tc.method, tc.path, "", "")
		assert.Equal(t, tc.code, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_SessionFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, http.MethodPost, "/auth/login", `{"password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tok dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	rec = do(h, http.MethodGet, "/auth/me", "", tok.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Петров")

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/user-tests/status", "", tok.AccessToken).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/user-tests/1/complete", `{"answers":["да"]}`, tok.AccessToken).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/user-tests/1/results", "", tok.AccessToken).Code)

	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/auth/logout", "", tok.AccessToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/auth/me", "", tok.AccessToken).Code)
}

func TestRouter_AuthErrors(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/auth/login", `{"password":"bad"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/auth/register", `{"last_name":"Петров"}`, "").Code)
	assert.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/auth/register", `{"last_name":"Сидоров"}`, "").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
