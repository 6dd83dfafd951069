package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/scrim-pick/cliparse"
	"github.com/danielhkuo/scrim-pick/db"
	"github.com/danielhkuo/scrim-pick/dispatch"
	"github.com/danielhkuo/scrim-pick/middleware"
	"github.com/danielhkuo/scrim-pick/router"
	"github.com/danielhkuo/scrim-pick/scrim"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and create schema (tables)
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewStore(dbConn)
	dispatcher := dispatch.New(dispatch.Config{
		RelayURL:      cfg.RelayURL,
		RelayKey:      cfg.RelayKey,
		Interval:      cfg.SendInterval,
		Timeout:       cfg.SendTimeout,
		MaxMessageLen: cfg.MaxMessageLen,
	})
	if cfg.RelayURL == "" {
		slog.Warn("RELAY_URL not set, chat messages will be dropped")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := scrim.NewService(ctx, scrim.Deps{
		Scores:    store,
		Pending:   store,
		Results:   store,
		Announcer: dispatcher,
	}, scrim.Config{
		BaseURL:      cfg.BaseURL,
		AdminKeySalt: cfg.AdminKeySalt,
		Workers:      cfg.Workers,
		QueueSize:    cfg.QueueSize,
	})

	// Create router
	mux, err := router.NewRouter(svc, store, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		svc.Close()
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler: middleware.WithRecovery(middleware.CORS(mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let queued announcements finish before the database goes away
	svc.Close()
}
