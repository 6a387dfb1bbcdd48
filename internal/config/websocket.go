package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	ReadLimit int64
}

// NewWebSocket checks origins against AllowedOrigins.
func NewWebSocket() (*WebSocket, error) {
	allowed := make(map[string]struct{})
	for _, origin := range AllowedOrigins() {
		allowed[origin] = struct{}{}
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[r.Header.Get("Origin")]
			return ok
		},
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: 4096,
	}

	return ws, nil
}
