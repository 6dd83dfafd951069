// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scrim

import (
	"context"

	"github.com/danielhkuo/scrim-pick/dispatch"
	"github.com/danielhkuo/scrim-pick/matchmaker"
	"github.com/danielhkuo/scrim-pick/models"
)

// ScoreStore resolves player names to per-role scores.
type ScoreStore interface {
	matchmaker.ScoreLookup
}

// PendingLedger tracks published match links that still need an outcome.
type PendingLedger interface {
	Append(ctx context.Context, link string) error
	FetchUnresolved(ctx context.Context) ([]models.PendingEntry, error)
	MarkDone(ctx context.Context, link string) (bool, error)
}

// ResultLedger stores recorded rounds.
type ResultLedger interface {
	AppendOutcome(ctx context.Context, o models.Outcome) error
}

// Announcer posts messages to the team chat. Each method reports whether
// the message was delivered.
type Announcer interface {
	SendText(ctx context.Context, content string) bool
	SendLong(ctx context.Context, content string) bool
	SendPayload(ctx context.Context, p dispatch.Payload) bool
}
