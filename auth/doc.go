// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys and interaction signature checks.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	closeKey := auth.GenerateAdminKey(pollID, salt)
	err := auth.ValidateAdminKey(pollID, closeKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same subject and salt always produce the same key. Poll close links
carry the key for the poll id; score edits require the key for PlayersScope.

# Interaction Signatures

Discord signs each interaction with Ed25519 over the timestamp header
followed by the raw body:

	v, err := auth.NewInteractionVerifier(cfg.DiscordPublicKey)
	err = v.Verify(r.Header.Get("X-Signature-Ed25519"), r.Header.Get("X-Signature-Timestamp"), body)

Without a configured public key every request is rejected.
*/
package auth
