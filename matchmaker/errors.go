// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/scrim-pick/models"
)

var (
	ErrRosterSize      = fmt.Errorf("%w: exactly %d players are required", models.ErrValidation, RosterSize)
	ErrDuplicatePlayer = fmt.Errorf("%w: duplicate player name", models.ErrValidation)
	ErrInvalidName     = fmt.Errorf("%w: player names must not contain commas", models.ErrValidation)
	ErrInvalidLink     = fmt.Errorf("%w: malformed match link", models.ErrValidation)
	ErrUnknownRole     = fmt.Errorf("%w: unknown role", models.ErrValidation)
)

// MissingPlayersError lists every roster name the score store could not resolve.
type MissingPlayersError struct {
	Names []string
}

func (e *MissingPlayersError) Error() string {
	return "no scores found for: " + strings.Join(e.Names, ", ")
}

func (e *MissingPlayersError) Unwrap() error {
	return models.ErrValidation
}

// IsMissingPlayers reports whether err carries a MissingPlayersError.
func IsMissingPlayers(err error) bool {
	var mp *MissingPlayersError
	return errors.As(err, &mp)
}
