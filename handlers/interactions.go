// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/poll"
	"github.com/danielhkuo/scrim-pick/scrim"
	"github.com/danielhkuo/scrim-pick/worker"
)

// Discord interaction and callback types.
const (
	interactionPing      = 1
	interactionCommand   = 2
	interactionComponent = 3

	callbackPong    = 1
	callbackMessage = 4

	flagEphemeral = 64

	maxInteractionBody = 1 << 20
)

type interaction struct {
	Type   int             `json:"type"`
	Data   interactionBody `json:"data"`
	Member *struct {
		User interactionUser `json:"user"`
	} `json:"member"`
	User *interactionUser `json:"user"`
}

type interactionUser struct {
	ID string `json:"id"`
}

type interactionBody struct {
	Name     string              `json:"name"`
	Options  []interactionOption `json:"options"`
	CustomID string              `json:"custom_id"`
}

type interactionOption struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// identity is the guild member's id, or the user's id in DMs.
func (in interaction) identity() string {
	if in.Member != nil && in.Member.User.ID != "" {
		return in.Member.User.ID
	}
	if in.User != nil {
		return in.User.ID
	}
	return ""
}

func (b interactionBody) option(name string) (json.RawMessage, bool) {
	for _, o := range b.Options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return nil, false
}

func (b interactionBody) stringOption(name string) string {
	raw, ok := b.option(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	return s
}

func (b interactionBody) intOption(name string) (int, bool) {
	raw, ok := b.option(name)
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	n, err := strconv.Atoi(strings.Trim(string(raw), `"`))
	return n, err == nil
}

type InteractionHandler struct {
	svc      *scrim.Service
	verifier *auth.InteractionVerifier
}

func NewInteractionHandler(svc *scrim.Service, verifier *auth.InteractionVerifier) *InteractionHandler {
	return &InteractionHandler{svc: svc, verifier: verifier}
}

// Handle handles POST /interactions
// Every request must carry a valid Ed25519 signature. Slow work (match
// generation, result publishing) is queued and answered in chat later.
func (h *InteractionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not read body")
		return
	}

	sig := r.Header.Get("X-Signature-Ed25519")
	ts := r.Header.Get("X-Signature-Timestamp")
	if err := h.verifier.Verify(sig, ts, body); err != nil {
		slog.Warn("interaction rejected", "error", err)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid request signature")
		return
	}

	var in interaction
	if err := json.Unmarshal(body, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch in.Type {
	case interactionPing:
		middleware.JSONResponse(w, http.StatusOK, models.InteractionResponse{Type: callbackPong})
	case interactionCommand:
		h.command(w, r, in)
	case interactionComponent:
		h.component(w, r, in)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "unsupported interaction type")
	}
}

func (h *InteractionHandler) command(w http.ResponseWriter, r *http.Request, in interaction) {
	slog.Info("command received", "name", in.Data.Name, "user", in.identity())

	switch in.Data.Name {
	case "ping":
		reply(w, "pong", false)

	case "scrim":
		mode, err := models.ParseMode(in.Data.stringOption("mode"))
		if err != nil {
			reply(w, "⚠️ "+err.Error(), true)
			return
		}
		if err := h.svc.RequestScrim(in.Data.stringOption("members"), mode); err != nil {
			reply(w, busyMessage(err), true)
			return
		}
		reply(w, "Generating matches ("+mode.Title()+")...", false)

	case "vote":
		choice, ok := in.Data.intOption("choice")
		if !ok {
			reply(w, "⚠️ choice is required", true)
			return
		}
		if err := h.svc.Vote(in.identity(), choice-1); err != nil {
			switch {
			case errors.Is(err, poll.ErrNoActivePoll):
				reply(w, "There is no poll to vote on.", true)
			case errors.Is(err, poll.ErrInvalidOption):
				reply(w, fmt.Sprintf("⚠️ %d is not one of the options.", choice), true)
			default:
				reply(w, "⚠️ "+err.Error(), true)
			}
			return
		}
		reply(w, fmt.Sprintf("Vote recorded: %d", choice), true)

	case "reveal":
		if err := h.svc.RequestPublish(); err != nil {
			if errors.Is(err, poll.ErrNoActivePoll) {
				reply(w, "There is no poll to reveal.", true)
				return
			}
			reply(w, busyMessage(err), true)
			return
		}
		reply(w, "Publishing poll results...", false)

	default:
		reply(w, "Unknown command: "+in.Data.Name, true)
	}
}

func (h *InteractionHandler) component(w http.ResponseWriter, r *http.Request, in interaction) {
	res, n, err := h.svc.RecordFromButton(r.Context(), in.Data.CustomID)
	if err != nil {
		if !errors.Is(err, models.ErrValidation) {
			slog.Error("failed to record outcome from button", "custom_id", in.Data.CustomID, "error", err)
		}
		reply(w, "⚠️ "+err.Error(), true)
		return
	}
	if n == 0 {
		reply(w, fmt.Sprintf("Round %d skipped.", res.Round), true)
		return
	}
	reply(w, fmt.Sprintf("Round %d recorded: team %s won.", res.Round, res.Winner), false)
}

func busyMessage(err error) string {
	if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrQueueClosed) {
		return "⚠️ Busy, try again in a moment."
	}
	return "⚠️ " + err.Error()
}

func reply(w http.ResponseWriter, content string, ephemeral bool) {
	data := &models.InteractionData{Content: content}
	if ephemeral {
		data.Flags = flagEphemeral
	}
	middleware.JSONResponse(w, http.StatusOK, models.InteractionResponse{Type: callbackMessage, Data: data})
}
