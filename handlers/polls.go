// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/scrim"
)

type PollHandler struct {
	svc *scrim.Service
}

func NewPollHandler(svc *scrim.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// GetPoll handles GET /polls/{id}
// Vote counts and the winner stay hidden until the poll is closed.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Polls().Get(r.PathValue("id"))
	if err != nil {
		writeError(w, "get poll", err)
		return
	}

	res, closed := sess.Result()
	view := models.PollView{
		ID:        sess.ID(),
		Title:     sess.Title(),
		Status:    string(sess.Status()),
		VoteCount: sess.VoteCount(),
		OpenedAgo: humanize.Time(sess.CreatedAt()),
	}
	for i, o := range sess.Options() {
		opt := models.PollOptionView{Label: o.Label, Link: o.Link}
		if closed && i < len(res.Tally) {
			votes := res.Tally[i]
			opt.Votes = &votes
		}
		view.Options = append(view.Options, opt)
	}
	if closed && res.HasWinner() {
		winner := res.Winner + 1
		view.Winner = &winner
		view.Tie = res.Tie
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// SubmitVote handles POST /polls/{id}/votes
// choice is the option number shown in the poll, starting at 1. A second
// vote from the same voter replaces the first.
func (h *PollHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Polls().Get(r.PathValue("id"))
	if err != nil {
		writeError(w, "get poll", err)
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	voter := strings.TrimSpace(req.Voter)
	if voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter is required")
		return
	}
	if req.Choice == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice is required")
		return
	}

	if err := sess.SubmitVote(voter, *req.Choice-1); err != nil {
		writeError(w, "submit vote", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{Message: "Vote recorded"})
}

// ClosePoll handles POST /polls/{id}/close?key=...
// Closes the poll, announces the tally and queues the winner for a result.
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = r.Header.Get("X-Admin-Key")
	}
	if key == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "close key required")
		return
	}

	closed, err := h.svc.ClosePoll(r.Context(), r.PathValue("id"), key)
	if err != nil {
		writeError(w, "close poll", err)
		return
	}

	resp := models.ClosePollResponse{
		Tally:     closed.Result.Tally,
		Tie:       closed.Result.Tie,
		Link:      closed.Link,
		Announced: closed.Announced,
	}
	if closed.Result.HasWinner() {
		winner := closed.Result.Winner + 1
		resp.Winner = &winner
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
