// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matchmaker splits a ten-player roster into balanced five-player teams.

# Solving One Team

Solve enumerates every player-to-role bijection for five players and keeps
the ones where each player has a positive score on the assigned role:

	lineups := matchmaker.Solve(team, nil)

Passing a King fixes that player's role and permutes only the other four.

# Building a Pool

BuildPool tries all 252 five-player subsets against their complements and
classifies each lineup pair by score difference:

	pool, err := matchmaker.BuildPool(players, nil)
	// pool.Exact: totals equal
	// pool.Five:  totals differ by exactly 5

Every other difference is discarded. Both A/B orientations of a split
appear in the pool.

# Selecting

Select samples up to three matches from the classes a Mode asks for and
never fails on an empty pool.

# Links

A match is shared as BASE_URL/combo?a=...&b=..., with names listed in role
order. DecodeLink re-resolves the names through a ScoreLookup.
*/
package matchmaker
