// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/scrim-pick/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	s := NewStore(conn)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestCreateSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := CreateSchema(s.conn); err != nil {
		t.Errorf("second CreateSchema failed: %v", err)
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestStore_PlayerScores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Lookup(ctx, "faker"); err != nil || ok {
		t.Fatalf("Expected unknown player, got ok=%v err=%v", ok, err)
	}

	if err := s.UpsertPlayer(ctx, models.Player{Name: "faker", Scores: [5]int{1, 2, 5, 3, 0}}); err != nil {
		t.Fatalf("UpsertPlayer failed: %v", err)
	}
	if err := s.UpsertPlayer(ctx, models.Player{Name: "faker", Scores: [5]int{4, 2, 5, 3, 1}}); err != nil {
		t.Fatalf("second UpsertPlayer failed: %v", err)
	}

	got, ok, err := s.Lookup(ctx, "faker")
	if err != nil || !ok {
		t.Fatalf("Lookup failed: ok=%v err=%v", ok, err)
	}
	if got != [5]int{4, 2, 5, 3, 1} {
		t.Errorf("Expected updated scores, got %v", got)
	}

	err = s.UpsertPlayer(ctx, models.Player{Name: "  "})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestStore_PendingLedger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries, err := s.FetchUnresolved(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("Expected empty ledger, got %v, %v", entries, err)
	}

	for _, link := range []string{"L1", "L2", "L1"} {
		if err := s.Append(ctx, link); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, _ = s.FetchUnresolved(ctx)
	if len(entries) != 3 || entries[0].Link != "L1" || entries[1].Link != "L2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	first := entries[0].ID

	done, err := s.MarkDone(ctx, "L1")
	if err != nil || !done {
		t.Fatalf("MarkDone failed: done=%v err=%v", done, err)
	}

	entries, _ = s.FetchUnresolved(ctx)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 pending, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == first {
			t.Error("Expected the oldest L1 row to be resolved")
		}
	}

	done, err = s.MarkDone(ctx, "missing")
	if err != nil || done {
		t.Errorf("Expected no match, got done=%v err=%v", done, err)
	}
}

func TestStore_Outcomes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.Outcome{DateTag: "25/3/1", RoundTag: "1RD", Winners: []string{"a", "b", "c", "d", "e"}, Losers: []string{"f", "g", "h", "i", "j"}}
	second := models.Outcome{DateTag: "25/3/1", RoundTag: "2RD", Winners: first.Losers, Losers: first.Winners}
	for _, o := range []models.Outcome{first, second} {
		if err := s.AppendOutcome(ctx, o); err != nil {
			t.Fatalf("AppendOutcome failed: %v", err)
		}
	}

	got, err := s.Outcomes(ctx, 10)
	if err != nil {
		t.Fatalf("Outcomes failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(got))
	}
	if got[0].RoundTag != "2RD" || got[0].Winners[0] != "f" || len(got[0].Losers) != 5 {
		t.Errorf("unexpected newest outcome %+v", got[0])
	}
}
