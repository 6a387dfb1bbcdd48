package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/every-minesweeper/internal/command"
)

// ConnectWS upgrades to a websocket that accepts newline separated
// commands and answers every message with the game state, or with
// {"error": ...} when a command is rejected.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	logger := g.logger.With(slog.Int64("gameSessionId", sess.ID))

	if err := c.WriteJSON(NewGameSessionDTO(sess)); err != nil {
		logger.Error("unable to write json", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		logger.Debug(fmt.Sprintf("\t> %s", message))
		sess.Touch()

		var reply any
		if err := command.ExecuteAll(sess.Game, string(message)); err != nil {
			logger.Debug("rejected command", slog.Any("error", err))
			reply = map[string]string{"error": err.Error()}
		} else {
			reply = NewGameSessionDTO(sess)
		}

		if err := c.WriteJSON(reply); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			break
		}
		logger.Debug("\t< <session data>")
	}
}
