// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/poll"
	"github.com/danielhkuo/scrim-pick/scrim"
	"github.com/danielhkuo/scrim-pick/worker"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrState):
		return http.StatusConflict
	case errors.Is(err, poll.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidAdminKey):
		return http.StatusUnauthorized
	case errors.Is(err, scrim.ErrInvalidCloseKey):
		return http.StatusForbidden
	case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrQueueClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Internal errors are logged
// and hidden from the client.
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
