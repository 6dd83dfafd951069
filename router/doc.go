// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Scrim Pick API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints. It fails
only when the configured Discord public key is malformed:

	mux, err := router.NewRouter(svc, store, cfg)

# Endpoints

Health:

	GET /health

Matches:

	POST /matches - Generate (and optionally announce) matches
	GET  /combo   - Rebuild a match from its link

Player scores (admin, requires X-Admin-Key):

	PUT /players/{name} - Create or replace per-role scores

Named polls:

	GET  /polls/{id}       - Poll info (votes hidden until closed)
	POST /polls/{id}/votes - Vote or change a vote
	POST /polls/{id}/close - Close with ?key=

Results:

	POST /results          - Record round outcomes
	GET  /results          - Recent outcomes
	GET  /pending          - Matches waiting for a result
	POST /pending/resolve  - Drop a pending match without a result
	GET  /webhook-test     - Send a test message through the relay

Discord:

	POST /interactions - Signed slash commands and button presses

Every route except /health and / is wrapped with middleware.WithLogging.
*/
package router
