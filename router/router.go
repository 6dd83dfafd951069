// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/cliparse"
	"github.com/danielhkuo/scrim-pick/db"
	"github.com/danielhkuo/scrim-pick/handlers"
	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/scrim"
)

func NewRouter(svc *scrim.Service, store *db.Store, cfg cliparse.Config) (*http.ServeMux, error) {
	verifier, err := auth.NewInteractionVerifier(cfg.DiscordPublicKey)
	if err != nil {
		return nil, fmt.Errorf("interaction verifier: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(svc)
	playerHandler := handlers.NewPlayerHandler(store, cfg)
	pollHandler := handlers.NewPollHandler(svc)
	resultHandler := handlers.NewResultHandler(svc, store)
	interactionHandler := handlers.NewInteractionHandler(svc, verifier)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Matches
	mux.HandleFunc("POST /matches", middleware.WithLogging(matchHandler.Generate))
	mux.HandleFunc("GET /combo", middleware.WithLogging(matchHandler.DecodeLink))

	// Player scores (admin)
	mux.HandleFunc("PUT /players/{name}", middleware.WithLogging(playerHandler.Upsert))

	// Named polls
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(pollHandler.SubmitVote))
	mux.HandleFunc("POST /polls/{id}/close", middleware.WithLogging(pollHandler.ClosePoll))

	// Results and the pending ledger
	mux.HandleFunc("POST /results", middleware.WithLogging(resultHandler.Submit))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultHandler.List))
	mux.HandleFunc("GET /pending", middleware.WithLogging(resultHandler.Pending))
	mux.HandleFunc("POST /pending/resolve", middleware.WithLogging(resultHandler.Resolve))
	mux.HandleFunc("GET /webhook-test", middleware.WithLogging(resultHandler.WebhookTest))

	// Discord
	mux.HandleFunc("POST /interactions", middleware.WithLogging(interactionHandler.Handle))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("scrim-pick API v1"))
	})

	return mux, nil
}
