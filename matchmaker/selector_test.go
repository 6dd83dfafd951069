// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"testing"

	"github.com/danielhkuo/scrim-pick/models"
)

func poolOfSize(exact, five int) models.MatchPool {
	var pool models.MatchPool
	for i := 0; i < exact; i++ {
		pool.Exact = append(pool.Exact, models.Match{A: models.TeamAssignment{Total: i}})
	}
	for i := 0; i < five; i++ {
		pool.Five = append(pool.Five, models.Match{A: models.TeamAssignment{Total: 1000 + i}})
	}
	return pool
}

func TestSelect_Sizes(t *testing.T) {
	tests := []struct {
		name  string
		pool  models.MatchPool
		mode  models.Mode
		count int
	}{
		{"empty pool", models.MatchPool{}, models.ModeAll, 0},
		{"empty class", poolOfSize(0, 4), models.ModeExact, 0},
		{"one exact", poolOfSize(1, 4), models.ModeExact, 1},
		{"two five", poolOfSize(5, 2), models.ModeFive, 2},
		{"large all", poolOfSize(10, 10), models.ModeAll, 3},
		{"all combines classes", poolOfSize(1, 1), models.ModeAll, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.pool, tt.mode)
			if got == nil {
				t.Fatal("Expected a non-nil slice")
			}
			if len(got) != tt.count {
				t.Errorf("Expected %d matches, got %d", tt.count, len(got))
			}
		})
	}
}

func TestSelect_ModeRespected(t *testing.T) {
	pool := poolOfSize(5, 5)
	for i := 0; i < 50; i++ {
		for _, m := range Select(pool, models.ModeFive) {
			if m.A.Total < 1000 {
				t.Fatal("five mode returned an exact match")
			}
		}
		for _, m := range Select(pool, models.ModeExact) {
			if m.A.Total >= 1000 {
				t.Fatal("exact mode returned a five match")
			}
		}
	}
}

func TestSampleIndices_NoDuplicates(t *testing.T) {
	hits := make([]int, 5)
	for i := 0; i < 2000; i++ {
		idx := SampleIndices(5, SampleSize)
		if len(idx) != 3 {
			t.Fatalf("Expected 3 indices, got %d", len(idx))
		}
		seen := map[int]bool{}
		for _, j := range idx {
			if j < 0 || j >= 5 {
				t.Fatalf("index %d out of range", j)
			}
			if seen[j] {
				t.Fatalf("duplicate index %d in %v", j, idx)
			}
			seen[j] = true
			hits[j]++
		}
	}
	for j, h := range hits {
		if h == 0 {
			t.Errorf("index %d never sampled", j)
		}
	}
}
