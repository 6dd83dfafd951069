// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "math/rand/v2"

// NoWinner is Result.Winner when no votes were cast.
const NoWinner = -1

// Result is the outcome of a closed poll.
type Result struct {
	Tally  []int
	Winner int
	Tie    bool
}

// HasWinner reports whether at least one vote was counted.
func (r Result) HasWinner() bool {
	return r.Winner != NoWinner
}

// Tally counts votes per option and picks the winner. When several options
// share the highest count, pick(n) chooses among them; a nil pick uses
// rand.IntN. Votes for indices outside [0, options) are ignored.
func Tally(options int, votes map[string]int, pick func(n int) int) Result {
	res := Result{Tally: make([]int, options), Winner: NoWinner}
	for _, idx := range votes {
		if idx >= 0 && idx < options {
			res.Tally[idx]++
		}
	}

	best := 0
	var tops []int
	for i, c := range res.Tally {
		switch {
		case c == 0:
		case c > best:
			best = c
			tops = append(tops[:0], i)
		case c == best:
			tops = append(tops, i)
		}
	}
	if len(tops) == 0 {
		return res
	}

	if pick == nil {
		pick = rand.IntN
	}
	res.Winner = tops[0]
	if len(tops) > 1 {
		res.Tie = true
		res.Winner = tops[pick(len(tops))]
	}
	return res
}
