// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/cliparse"
	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
)

// PlayerStore persists per-role scores.
type PlayerStore interface {
	UpsertPlayer(ctx context.Context, p models.Player) error
}

type PlayerHandler struct {
	store PlayerStore
	cfg   cliparse.Config
}

func NewPlayerHandler(store PlayerStore, cfg cliparse.Config) *PlayerHandler {
	return &PlayerHandler{store: store, cfg: cfg}
}

// Upsert handles PUT /players/{name}
// Requires X-Admin-Key for the players scope. A zero score means the
// player cannot play that role.
func (h *PlayerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.Contains(name, ",") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must not contain commas")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return
	}
	if err := auth.ValidateAdminKey(auth.PlayersScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.UpsertPlayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	for _, s := range req.Scores {
		if s < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "scores must not be negative")
			return
		}
	}

	player := models.Player{Name: name, Scores: req.Scores}
	if err := h.store.UpsertPlayer(r.Context(), player); err != nil {
		writeError(w, "upsert player", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, player)
}
