package config

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCookies(t *testing.T) *Cookies {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	t.Setenv("COOKIES_SAMESITE", "strict")
	t.Setenv("COOKIES_SECURE", "0")
	cookies, err := NewCookies(NewJWTWithKey(key, time.Hour))
	require.NoError(t, err)
	return cookies
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestCookiesIssueAndParse(t *testing.T) {
	c := newTestCookies(t)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.Secure)

	w := httptest.NewRecorder()
	claims, err := c.Issue(w)
	require.NoError(t, err)
	assert.Len(t, claims.ClientID, 32)

	issued := w.Result().Cookies()
	require.Len(t, issued, 2)
	assert.Equal(t, "auth", issued[0].Name)
	assert.Equal(t, "sign", issued[1].Name)
	assert.True(t, issued[1].HttpOnly)

	parsed, err := c.ParseClientClaims(requestWith(issued))
	require.NoError(t, err)
	assert.Equal(t, claims.ClientID, parsed.ClientID)
}

func TestCookiesRejectTamperedToken(t *testing.T) {
	c := newTestCookies(t)
	w := httptest.NewRecorder()
	_, err := c.Issue(w)
	require.NoError(t, err)

	issued := w.Result().Cookies()
	other := httptest.NewRecorder()
	_, err = c.Issue(other)
	require.NoError(t, err)

	// payload of one client with the signature of another
	mixed := []*http.Cookie{issued[0], other.Result().Cookies()[1]}
	_, err = c.ParseClientClaims(requestWith(mixed))
	assert.Error(t, err)
}

func TestCookiesRejectForeignKey(t *testing.T) {
	c := newTestCookies(t)
	foreign := newTestCookies(t)

	w := httptest.NewRecorder()
	_, err := foreign.Issue(w)
	require.NoError(t, err)

	_, err = c.ParseClientClaims(requestWith(w.Result().Cookies()))
	assert.Error(t, err)
}

func TestCookiesMissing(t *testing.T) {
	c := newTestCookies(t)
	_, err := c.ParseClientClaims(requestWith(nil))
	assert.ErrorIs(t, err, http.ErrNoCookie)
}

func TestCookiesInvalidSameSite(t *testing.T) {
	t.Setenv("COOKIES_SAMESITE", "sideways")
	_, err := NewCookies(nil)
	assert.Error(t, err)
}

func TestCookiesExpireWithTokenLifetime(t *testing.T) {
	c := newTestCookies(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	claims, err := c.Issue(w)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	for _, cookie := range w.Result().Cookies() {
		assert.Equal(t, now.Add(time.Hour), cookie.Expires.UTC(), cookie.Name)
	}
}
