// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/scrim"
)

type MatchHandler struct {
	svc *scrim.Service
}

func NewMatchHandler(svc *scrim.Service) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// Generate handles POST /matches
// Builds the match pool for ten players and returns up to three matches.
// With announce set, the matches are also posted to chat and opened as a poll.
func (h *MatchHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateMatchesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		writeError(w, "parse mode", err)
		return
	}

	var king *models.King
	if name := strings.TrimSpace(req.King); name != "" {
		role, err := models.ParseRole(req.KingRole)
		if err != nil {
			writeError(w, "parse king role", err)
			return
		}
		king = &models.King{Player: name, Role: role}
	}

	gen, err := h.svc.Generate(r.Context(), scrim.Request{Names: req.Players, Mode: mode, King: king})
	if err != nil {
		writeError(w, "generate matches", err)
		return
	}

	resp := models.GenerateMatchesResponse{
		Mode:    gen.Mode,
		Exact:   gen.ExactCount,
		Five:    gen.FiveCount,
		Matches: make([]models.MatchView, 0, len(gen.Matches)),
	}
	for _, m := range gen.Matches {
		resp.Matches = append(resp.Matches, models.MatchView{Match: m, Link: h.svc.Link(m), Diff: m.Diff()})
	}

	if req.Announce {
		pollID, err := h.svc.Announce(gen.Mode, gen.Matches)
		if err != nil {
			writeError(w, "announce matches", err)
			return
		}
		resp.PollID = pollID
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DecodeLink handles GET /combo?a=...&b=...
// Rebuilds the match behind a link with current scores.
func (h *MatchHandler) DecodeLink(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.DecodeLink(r.Context(), r.URL.RawQuery)
	if err != nil {
		writeError(w, "decode link", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MatchView{Match: m, Link: h.svc.Link(m), Diff: m.Diff()})
}
