package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func SendJSON(w http.ResponseWriter, statusCode int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(payload)
}

func SendJSONOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	v any,
) {
	if _, err := SendJSON(w, statusCode, v); err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	statusCode int,
	e error,
) {
	_, err := SendJSON(w, statusCode, map[string]string{
		"error": e.Error(),
	})
	if err != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", e),
			slog.Any("error", err),
		)
	}
}

// internalError logs the cause and hides it from the client.
func internalError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	w.WriteHeader(http.StatusInternalServerError)
}
