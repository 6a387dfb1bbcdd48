package middleware

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/every-minesweeper/internal/config"
)

func newCookies(t *testing.T) *config.Cookies {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cookies, err := config.NewCookies(config.NewJWTWithKey(key, time.Hour))
	require.NoError(t, err)
	return cookies
}

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestAuthIssuesAndReuses(t *testing.T) {
	cookies := newCookies(t)
	var seen []string
	h := Auth(slog.Default(), cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClientClaims(r.Context())
		require.True(t, ok)
		seen = append(seen, claims.ClientID)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	issued := first.Result().Cookies()
	require.Len(t, issued, 2)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range issued {
		r.AddCookie(c)
	}
	second := httptest.NewRecorder()
	h.ServeHTTP(second, r)
	assert.Empty(t, second.Result().Cookies())

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestAuthReplacesInvalidCookies(t *testing.T) {
	cookies := newCookies(t)
	h := Auth(slog.Default(), cookies)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "auth", Value: "garbage.garbage"})
	r.AddCookie(&http.Cookie{Name: "sign", Value: "garbage"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Len(t, w.Result().Cookies(), 2)
}

func TestClientClaimsMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClientClaims(r.Context())
	assert.False(t, ok)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/game/1", nil))

	out := buf.String()
	assert.Contains(t, out, "handled request")
	assert.Contains(t, out, "statusCode=418")
	assert.Contains(t, out, "uri=/game/1")
}

func TestLoggingImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.True(t, strings.Contains(buf.String(), "statusCode=200"))
}

func TestCorsAllowsCredentials(t *testing.T) {
	h := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	r.Header.Set("Origin", "http://elsewhere")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
