package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/middleware"
)

func asClient(clientID string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithClientClaims(r.Context(), &config.ClientClaims{ClientID: clientID})
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestConnectWS(t *testing.T) {
	s := newTestServer(t, false)
	g := s.newGame(t, "?size=3&seed="+corners, "alice")

	srv := httptest.NewServer(asClient("alice", s.mux))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + g.GameSessionID + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var initial gameResponse
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "play", initial.State)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0\no 1 1")))
	var after gameResponse
	require.NoError(t, conn.ReadJSON(&after))
	assert.Equal(t, 1, after.MinesRemaining)
	assert.Equal(t, "revealed", after.Cells[1][1]["state"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("x 1 1")))
	var rejected map[string]string
	require.NoError(t, conn.ReadJSON(&rejected))
	assert.Contains(t, rejected["error"], "line 1")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 2 2\no 0 1")))
	var lost gameResponse
	require.NoError(t, conn.ReadJSON(&lost))
	assert.Equal(t, "loss", lost.State)
	assert.Equal(t, "hidden", lost.Cells[0][1]["state"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("r")))
	var reset gameResponse
	require.NoError(t, conn.ReadJSON(&reset))
	assert.Equal(t, "play", reset.State)
}

func TestConnectWSForeignClient(t *testing.T) {
	s := newTestServer(t, false)
	g := s.newGame(t, "?size=3&seed="+corners, "alice")

	srv := httptest.NewServer(asClient("mallory", s.mux))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + g.GameSessionID + "/connect"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
