// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Per-role player scores
CREATE TABLE IF NOT EXISTS player_score (
    name TEXT PRIMARY KEY,
    top INTEGER NOT NULL DEFAULT 0,
    jungle INTEGER NOT NULL DEFAULT 0,
    mid INTEGER NOT NULL DEFAULT 0,
    adc INTEGER NOT NULL DEFAULT 0,
    support INTEGER NOT NULL DEFAULT 0,
    updated_at BIGINT NOT NULL
);

-- Published match links awaiting an outcome
CREATE TABLE IF NOT EXISTS pending_match (
    id TEXT PRIMARY KEY,
    link TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'done')),
    created_at BIGINT NOT NULL,
    resolved_at BIGINT
);

CREATE INDEX IF NOT EXISTS idx_pending_match_status ON pending_match(status, created_at);
CREATE INDEX IF NOT EXISTS idx_pending_match_link ON pending_match(link);

-- Recorded round outcomes
CREATE TABLE IF NOT EXISTS match_result (
    id TEXT PRIMARY KEY,
    date_tag TEXT NOT NULL,
    round_tag TEXT NOT NULL,
    winners TEXT NOT NULL,
    losers TEXT NOT NULL,
    recorded_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_result_recorded_at ON match_result(recorded_at);
`
