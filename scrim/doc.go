// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scrim runs the scrim workflow on top of the matchmaker, poll and
dispatch packages.

# Flow

  - Generate: ten names and a mode become up to three balanced matches.
  - Announce / RequestScrim: the matches are posted as tables, a named web
    poll is opened, and the chat's current poll is replaced.
  - Vote / RequestPublish: chat votes go to the current poll; publishing
    detaches it and announces the winner with result buttons.
  - ClosePoll: closes a named web poll with its close key and announces.
  - RecordOutcome: one row per decided round, then the pending entry for
    the match is resolved.

# Background Work

Chat-triggered work runs on a bounded worker queue so interaction replies
stay fast. A task that fails or panics is reported in chat.

# Degradation

A failed chat send is logged and otherwise ignored. A failed pending-ledger
read is treated as an empty list; a failed write is logged. Only result
ledger writes surface as errors.
*/
package scrim
