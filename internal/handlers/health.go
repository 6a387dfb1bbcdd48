package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
}

// NewHealthHandler accepts a nil db.
func NewHealthHandler(logger *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{logger: logger, db: db}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, h.logger, http.StatusOK, map[string]string{
		"data": "Successful Ping!",
	})
}

func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		SendErrorOrLog(w, h.logger, http.StatusServiceUnavailable, errNoDatabase)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", slog.Any("error", err))
		SendErrorOrLog(w, h.logger, http.StatusServiceUnavailable, err)
		return
	}
	SendJSONOrLog(w, h.logger, http.StatusOK, map[string]string{
		"data": "Database is reachable",
	})
}
