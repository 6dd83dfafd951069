// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scrim

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/scrim-pick/models"
)

var (
	ErrInvalidCloseKey = errors.New("invalid close key")
	ErrInvalidRound    = fmt.Errorf("%w: round must be 1 or 2", models.ErrValidation)
	ErrInvalidResult   = fmt.Errorf("%w: result must be A or B, or N to skip round 2", models.ErrValidation)
	ErrInvalidCustomID = fmt.Errorf("%w: unrecognised button id", models.ErrValidation)
)
