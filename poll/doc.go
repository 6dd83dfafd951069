// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements in-memory voting over a small set of options.

A Session is one poll: voters upsert a single choice each until the poll is
closed, at which point the tally and winner are computed once and frozen.
Ties on the highest count are broken uniformly at random.

A Registry holds named sessions addressed by id, and one "current" slot used
by chat commands. The current slot is replaced whenever new matches are
announced and is emptied atomically by PublishAndClear.

Nothing here is persisted; a restart drops every poll.
*/
package poll
