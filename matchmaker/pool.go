// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/danielhkuo/scrim-pick/models"
)

// RosterSize is the number of players split into two teams.
const RosterSize = 2 * models.RoleCount

// Score differences kept in a MatchPool.
const (
	DiffExact = 0
	DiffFive  = 5
)

// ScoreLookup resolves a player name to per-role scores.
type ScoreLookup interface {
	Lookup(ctx context.Context, name string) ([models.RoleCount]int, bool, error)
}

// Resolve looks up every name. Unknown names are collected and returned
// together as a *MissingPlayersError; a store failure aborts immediately.
func Resolve(ctx context.Context, scores ScoreLookup, names []string) ([]models.Player, error) {
	players := make([]models.Player, 0, len(names))
	var missing []string
	for _, name := range names {
		s, ok, err := scores.Lookup(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
			continue
		}
		players = append(players, models.Player{Name: name, Scores: s})
	}
	if len(missing) > 0 {
		return nil, &MissingPlayersError{Names: missing}
	}
	return players, nil
}

// ValidateRoster checks for exactly RosterSize distinct names. Names end up
// comma-joined in match links, so a name holding a comma is rejected.
func ValidateRoster(names []string) error {
	if len(names) != RosterSize {
		return ErrRosterSize
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.Contains(n, ",") {
			return fmt.Errorf("%w: %s", ErrInvalidName, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, n)
		}
		seen[n] = true
	}
	return nil
}

// BuildPool tries every five-player subset as team A against its
// complement as team B and keeps each pair of valid lineups whose totals
// differ by exactly 0 or 5. Both orientations of a split are kept.
func BuildPool(players []models.Player, king *models.King) (models.MatchPool, error) {
	var pool models.MatchPool

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	if err := ValidateRoster(names); err != nil {
		return pool, err
	}
	if king != nil {
		if king.Role < 0 || int(king.Role) >= models.RoleCount {
			return pool, ErrUnknownRole
		}
		if !containsName(names, king.Player) {
			return pool, nil
		}
	}

	for mask := uint(0); mask < 1<<RosterSize; mask++ {
		if bits.OnesCount(mask) != models.RoleCount {
			continue
		}
		var teamA, teamB Team
		na, nb := 0, 0
		kingOnA := false
		for i, p := range players {
			if mask&(1<<i) != 0 {
				teamA[na] = p
				na++
				if king != nil && p.Name == king.Player {
					kingOnA = true
				}
			} else {
				teamB[nb] = p
				nb++
			}
		}

		var kingA, kingB *models.King
		if king != nil {
			if kingOnA {
				kingA = king
			} else {
				kingB = king
			}
		}

		lineupsA := Solve(teamA, kingA)
		if len(lineupsA) == 0 {
			continue
		}
		lineupsB := Solve(teamB, kingB)
		for _, a := range lineupsA {
			for _, b := range lineupsB {
				m := models.Match{A: a, B: b}
				switch m.Diff() {
				case DiffExact:
					pool.Exact = append(pool.Exact, m)
				case DiffFive:
					pool.Five = append(pool.Five, m)
				}
			}
		}
	}
	return pool, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
