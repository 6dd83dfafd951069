// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Scrim Pick API server.

Scrim Pick builds balanced 5v5 custom games from a ten-player roster,
posts them to team chat, runs a poll on which match to play and keeps a
ledger of recorded outcomes.

# Starting the Server

Configuration comes from environment variables, an optional .env file, or
CLI flags. The defaults use a local sqlite file:

	DATABASE_URL=scrim.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for close keys and the players key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (-base-url): Public address used in match and poll links
  - RELAY_URL, RELAY_KEY: Chat relay endpoint; messages are dropped without it
  - SEND_INTERVAL, SEND_TIMEOUT, MAX_MESSAGE_LEN: Relay pacing and chunking
  - DISCORD_PUBLIC_KEY: Enables POST /interactions
  - WORKERS, QUEUE_SIZE: Background announcement queue

# Architecture

  - matchmaker: Role solver, match pool and sampling, match links
  - poll: Poll sessions, tally and the current-poll slot
  - dispatch: Rate-limited chat relay with chunking
  - worker: Bounded background queue
  - scrim: Service tying the above to storage
  - handlers, router, middleware: HTTP surface
  - db: Schema and store
  - auth: Admin keys and interaction signatures
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
