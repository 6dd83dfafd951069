// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"testing"

	"github.com/danielhkuo/scrim-pick/cliparse"
	"github.com/danielhkuo/scrim-pick/db"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/poll"
	"github.com/danielhkuo/scrim-pick/scrim"
	"github.com/danielhkuo/scrim-pick/testutil"
)

type testEnv struct {
	svc   *scrim.Service
	store *db.Store
	ann   *testutil.Announcer
	cfg   cliparse.Config
}

// setupEnv wires a service over a seeded in-memory database and a
// recording announcer. Poll ties always go to the first option.
func setupEnv(t *testing.T) testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	conn := testutil.SetupTestDB(t)
	testutil.SeedPlayers(t, conn, testutil.TestRoster())
	store := db.NewStore(conn)
	ann := testutil.NewAnnouncer()

	svc := scrim.NewService(context.Background(), scrim.Deps{
		Scores:    store,
		Pending:   store,
		Results:   store,
		Announcer: ann,
		Polls:     poll.NewRegistry().WithPicker(func(int) int { return 0 }),
	}, scrim.Config{
		BaseURL:      cfg.BaseURL,
		AdminKeySalt: cfg.AdminKeySalt,
		Workers:      cfg.Workers,
		QueueSize:    cfg.QueueSize,
	})
	t.Cleanup(svc.Close)

	return testEnv{svc: svc, store: store, ann: ann, cfg: cfg}
}

// generate draws three exact matches from the test roster.
func (e testEnv) generate(t *testing.T) []models.Match {
	t.Helper()

	gen, err := e.svc.Generate(context.Background(), scrim.Request{Names: testutil.RosterNames(), Mode: models.ModeExact})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return gen.Matches
}

// openPoll announces three matches and returns the named poll id.
func (e testEnv) openPoll(t *testing.T) string {
	t.Helper()

	pollID, err := e.svc.Announce(models.ModeExact, e.generate(t))
	if err != nil {
		t.Fatalf("Announce failed: %v", err)
	}
	e.ann.WaitFor(t, 2)
	return pollID
}
