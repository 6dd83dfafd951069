// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/matchmaker"
	"github.com/danielhkuo/scrim-pick/poll"
	"github.com/danielhkuo/scrim-pick/scrim"
	"github.com/danielhkuo/scrim-pick/worker"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{matchmaker.ErrRosterSize, http.StatusBadRequest},
		{&matchmaker.MissingPlayersError{Names: []string{"x"}}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", poll.ErrInvalidOption), http.StatusBadRequest},
		{poll.ErrAlreadyClosed, http.StatusConflict},
		{poll.ErrNoActivePoll, http.StatusConflict},
		{poll.ErrNotFound, http.StatusNotFound},
		{auth.ErrInvalidAdminKey, http.StatusUnauthorized},
		{scrim.ErrInvalidCloseKey, http.StatusForbidden},
		{worker.ErrQueueFull, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}
