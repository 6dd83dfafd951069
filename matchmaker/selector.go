// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"math/rand/v2"

	"github.com/danielhkuo/scrim-pick/models"
)

// SampleSize is the most matches offered for one vote.
const SampleSize = 3

// Candidates returns the part of the pool that mode draws from.
func Candidates(pool models.MatchPool, mode models.Mode) []models.Match {
	switch mode {
	case models.ModeExact:
		return pool.Exact
	case models.ModeFive:
		return pool.Five
	}
	all := make([]models.Match, 0, len(pool.Exact)+len(pool.Five))
	all = append(all, pool.Exact...)
	return append(all, pool.Five...)
}

// Select draws up to SampleSize matches uniformly without replacement.
// An empty pool yields an empty slice.
func Select(pool models.MatchPool, mode models.Mode) []models.Match {
	candidates := Candidates(pool, mode)
	idx := SampleIndices(len(candidates), SampleSize)
	out := make([]models.Match, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out
}

// SampleIndices returns min(k, n) distinct indices in [0, n).
func SampleIndices(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	out := make([]int, 0, k)
	seen := make(map[int]bool, k)
	for len(out) < k {
		i := rand.IntN(n)
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}
