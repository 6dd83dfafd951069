// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types shared across
the service.

# Domain Types

  - Role: the five lane positions in canonical order (top, jungle, mid, adc, support)
  - Player: a name with one score per role
  - RoleAssignment / TeamAssignment: a lineup with every role filled once
  - Match: two lineups covering the same ten players
  - MatchPool: generated matches split by score difference (0 and 5)
  - King: an optional (player, role) pin
  - Mode: all, exact, or five

# Error Categories

Errors returned by the matchmaker and poll packages wrap one of:

	ErrValidation // bad input: roster size, unknown names, option index, link, mode
	ErrState      // lifecycle: voting on a closed poll, closing twice, no active poll

Use errors.Is to classify them.

# Request and Response Types

JSON bodies for the HTTP handlers: GenerateMatchesRequest, SubmitVoteRequest,
SubmitResultRequest, PollView, ClosePollResponse, ErrorResponse, and friends.
*/
package models
