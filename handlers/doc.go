// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Scrim Pick API.

# Handler Types

Each handler is a struct over the scrim service and, where it needs one,
a narrow store interface:

  - MatchHandler: match generation and link decoding
  - PlayerHandler: per-role score upserts
  - PollHandler: named poll view, votes and close
  - ResultHandler: outcome recording, pending ledger, relay test
  - InteractionHandler: Discord slash commands and result buttons

	matchHandler := handlers.NewMatchHandler(svc)
	playerHandler := handlers.NewPlayerHandler(store, cfg)

# Matches

	POST /matches → Generate (optionally announces and opens a poll)
	GET /combo    → DecodeLink (rebuilds a match from its link)

# Named Polls

	GET /polls/{id}        → GetPoll (votes hidden until closed)
	POST /polls/{id}/votes → SubmitVote (choice starts at 1)
	POST /polls/{id}/close → ClosePoll (?key= from the announcement)

Closing announces the tally and adds the winning link to the pending
ledger. The poll stays closed even if the announcement fails.

# Results

	POST /results          → Submit (round1 A/B, round2 A/B/N or empty)
	GET /results           → List
	GET /pending           → Pending
	POST /pending/resolve  → Resolve
	GET /webhook-test      → WebhookTest

# Interactions

POST /interactions verifies the Ed25519 signature headers before looking
at the body. Commands: ping, scrim (members, mode), vote (choice), reveal.
Component presses carry a result custom id built by scrim.ResultCustomID.

# Errors

Service errors map to statuses by category: validation errors are 400,
state errors 409, unknown polls 404, bad admin keys 401, bad close keys
403 and a full work queue 503.
*/
package handlers
