// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// PlayersScope is the subject of the admin key that guards score edits.
const PlayersScope = "players"

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidSignature = errors.New("invalid request signature")
	ErrNoPublicKey      = errors.New("interaction public key not configured")
)

// GenerateAdminKey creates an HMAC-based admin key for a subject, either a
// poll id or PlayersScope.
// This is deterministic and verifiable
func GenerateAdminKey(subject, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(subject))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the subject
func ValidateAdminKey(subject, adminKey, salt string) error {
	expected := GenerateAdminKey(subject, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// InteractionVerifier checks the Ed25519 signature Discord attaches to
// every interaction request: signature(timestamp || body).
type InteractionVerifier struct {
	key ed25519.PublicKey
}

// NewInteractionVerifier decodes a hex public key. An empty key yields a
// verifier that rejects everything.
func NewInteractionVerifier(publicKeyHex string) (*InteractionVerifier, error) {
	publicKeyHex = strings.TrimSpace(publicKeyHex)
	if publicKeyHex == "" {
		return &InteractionVerifier{}, nil
	}
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return &InteractionVerifier{key: ed25519.PublicKey(raw)}, nil
}

// Verify validates the hex signature over timestamp followed by body.
func (v *InteractionVerifier) Verify(signatureHex, timestamp string, body []byte) error {
	if len(v.key) == 0 {
		return ErrNoPublicKey
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	if !ed25519.Verify(v.key, msg, sig) {
		return ErrInvalidSignature
	}
	return nil
}
