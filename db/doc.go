// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database setup and the persistent stores.

# Opening

Open picks the driver from the database type (sqlite via modernc.org/sqlite,
or postgres via lib/pq), pings, and creates the schema:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - player_score: per-role scores keyed by player name
  - pending_match: published match links and whether an outcome was recorded
  - match_result: one row per recorded round, winners and losers in role order

Timestamps are stored as UTC Unix nanoseconds in BIGINT columns so both
drivers agree on ordering.

# Store

Store implements the score lookup used by the matchmaker, the pending
ledger (Append, FetchUnresolved, MarkDone) and the result ledger
(AppendOutcome, Outcomes). All queries use $N placeholders, accepted by
both drivers.
*/
package db
