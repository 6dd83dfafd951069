// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/scrim"
)

const (
	defaultOutcomeLimit = 20
	maxOutcomeLimit     = 200
)

// OutcomeLister reads recorded rounds, newest first.
type OutcomeLister interface {
	Outcomes(ctx context.Context, limit int) ([]models.Outcome, error)
}

type ResultHandler struct {
	svc      *scrim.Service
	outcomes OutcomeLister
}

func NewResultHandler(svc *scrim.Service, outcomes OutcomeLister) *ResultHandler {
	return &ResultHandler{svc: svc, outcomes: outcomes}
}

// Submit handles POST /results
// round1 must be A or B. round2 is A, B, N to skip, or empty when only one
// round was played.
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Link) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "link is required")
		return
	}

	rounds := []scrim.RoundResult{{Round: 1, Winner: normalizeWinner(req.Round1)}}
	if round2 := normalizeWinner(req.Round2); round2 != "" {
		rounds = append(rounds, scrim.RoundResult{Round: 2, Winner: round2})
	}

	n, err := h.svc.RecordOutcome(r.Context(), req.Link, rounds...)
	if err != nil {
		writeError(w, "record outcome", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResultResponse{Recorded: n})
}

func normalizeWinner(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// List handles GET /results?limit=N
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultOutcomeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxOutcomeLimit)
	}

	outcomes, err := h.outcomes.Outcomes(r.Context(), limit)
	if err != nil {
		writeError(w, "list outcomes", err)
		return
	}
	if outcomes == nil {
		outcomes = []models.Outcome{}
	}

	middleware.JSONResponse(w, http.StatusOK, outcomes)
}

// Pending handles GET /pending
// Lists published matches still waiting for a result, oldest first.
func (h *ResultHandler) Pending(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Pending(r.Context())

	views := make([]models.PendingView, 0, len(entries))
	for _, e := range entries {
		views = append(views, models.PendingView{
			Link:    e.Link,
			AddedAt: e.CreatedAt.UTC().Format(time.RFC3339),
			Age:     humanize.Time(e.CreatedAt),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// Resolve handles POST /pending/resolve
// Marks the oldest pending entry for a link as done without a result.
func (h *ResultHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req models.ResolvePendingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Link) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "link is required")
		return
	}

	done, err := h.svc.ResolvePending(r.Context(), req.Link)
	if err != nil {
		writeError(w, "resolve pending", err)
		return
	}
	if !done {
		middleware.ErrorResponse(w, http.StatusNotFound, "No pending entry for link")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Resolved"})
}

// WebhookTest handles GET /webhook-test?msg=...
func (h *ResultHandler) WebhookTest(w http.ResponseWriter, r *http.Request) {
	msg := strings.TrimSpace(r.URL.Query().Get("msg"))
	if msg == "" {
		msg = "ping"
	}

	if !h.svc.TestMessage(r.Context(), msg) {
		middleware.ErrorResponse(w, http.StatusBadGateway, "Relay did not accept the message")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Sent"})
}
