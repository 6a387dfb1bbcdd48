package handlers

import (
	"errors"
	"log/slog"
	"net/http"
)

var (
	errNoDatabase = errors.New("seed catalog is not available")
	errNotOwner   = errors.New("game belongs to another client")
	errNoClient   = errors.New("no client identity")
)

type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }

func (e *statusError) Unwrap() error { return e.err }

func badRequest(err error) error   { return &statusError{http.StatusBadRequest, err} }
func notFound(err error) error     { return &statusError{http.StatusNotFound, err} }
func unauthorized(err error) error { return &statusError{http.StatusUnauthorized, err} }
func unavailable(err error) error  { return &statusError{http.StatusServiceUnavailable, err} }

// fail replies with the status carried by err, or 500 with the cause only
// logged.
func fail(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	var se *statusError
	if errors.As(err, &se) {
		SendErrorOrLog(w, logger, se.status, se.err)
		return
	}
	internalError(w, logger, msg, err)
}
