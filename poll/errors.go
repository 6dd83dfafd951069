// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/scrim-pick/models"
)

var (
	ErrInvalidOption = fmt.Errorf("%w: option out of range", models.ErrValidation)
	ErrNoOptions     = fmt.Errorf("%w: a poll needs at least one option", models.ErrValidation)
	ErrSessionClosed = fmt.Errorf("%w: poll is closed", models.ErrState)
	ErrAlreadyClosed = fmt.Errorf("%w: poll already closed", models.ErrState)
	ErrNoActivePoll  = fmt.Errorf("%w: no active poll", models.ErrState)
	ErrNotFound      = errors.New("poll not found")
)
