package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{ID: 42, FirstName: "Иван", LastName: "Петров", MiddleName: "Иванович"}
}

func TestTokenManager_IssueParse(t *testing.T) {
	m := NewTokenManager("secret", 30*time.Minute)

	token, issued, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Петров Иван Иванович", claims.FullName)
	assert.Equal(t, issued.ID, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	token, _, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := NewTokenManager("secret", -time.Minute).Issue(testUser())
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer from-cookie"})
	assert.Equal(t, "from-cookie", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", ExtractToken(r), "заголовок важнее cookie")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "plain"})
	assert.Equal(t, "plain", ExtractToken(r))
}

func TestCookieRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, "abc.def.ghi", 30*time.Minute, false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 1800, c.MaxAge)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	assert.Equal(t, "abc.def.ghi", ExtractToken(r))

	w = httptest.NewRecorder()
	ClearCookie(w, false)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("qwerty1")
	require.NoError(t, err)
	assert.NotEqual(t, "qwerty1", hash)

	ok, err := CheckPassword(hash, "qwerty1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "qwerty2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "qwerty1")
	assert.Error(t, err)
}
