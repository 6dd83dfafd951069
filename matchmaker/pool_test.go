// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/danielhkuo/scrim-pick/models"
)

// singleRoleRoster gives every player a positive score on exactly one role,
// two players per role. The only split where both sides total 15 puts the
// high support player with the low player of every other role.
func singleRoleRoster() []models.Player {
	pairs := [5][2]int{{1, 2}, {1, 2}, {1, 3}, {2, 6}, {2, 10}}
	var players []models.Player
	for role, pair := range pairs {
		for j, score := range pair {
			var p models.Player
			p.Name = models.Role(role).String() + []string{"-low", "-high"}[j]
			p.Scores[role] = score
			players = append(players, p)
		}
	}
	return players
}

func randomRoster(r *rand.Rand) []models.Player {
	players := make([]models.Player, RosterSize)
	for i := range players {
		players[i].Name = "player" + string(rune('A'+i))
		for role := range players[i].Scores {
			players[i].Scores[role] = 1 + r.IntN(5)
		}
	}
	return players
}

func checkSplit(t *testing.T, roster []models.Player, m models.Match) {
	t.Helper()
	var want, got []string
	for _, p := range roster {
		want = append(want, p.Name)
	}
	seen := map[string]bool{}
	for _, n := range append(m.A.Names(), m.B.Names()...) {
		if seen[n] {
			t.Fatalf("player %s appears twice in match", n)
		}
		seen[n] = true
		got = append(got, n)
	}
	sort.Strings(want)
	sort.Strings(got)
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("match players %v do not cover roster %v", got, want)
		}
	}
}

func TestBuildPool_DiffClasses(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2; i++ {
		roster := randomRoster(r)
		pool, err := BuildPool(roster, nil)
		if err != nil {
			t.Fatalf("BuildPool failed: %v", err)
		}
		if len(pool.Exact)+len(pool.Five) == 0 {
			t.Fatal("Expected a non-empty pool for an all-positive roster")
		}
		for _, m := range pool.Exact {
			if m.A.Total != m.B.Total {
				t.Fatalf("exact match with totals %d/%d", m.A.Total, m.B.Total)
			}
			checkSplit(t, roster, m)
		}
		for _, m := range pool.Five {
			if m.Diff() != 5 {
				t.Fatalf("five match with totals %d/%d", m.A.Total, m.B.Total)
			}
			checkSplit(t, roster, m)
		}
	}
}

func TestBuildPool_SingleTieSplit(t *testing.T) {
	roster := singleRoleRoster()
	pool, err := BuildPool(roster, nil)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	if len(pool.Exact) != 2 {
		t.Fatalf("Expected exactly 2 exact matches (one split, both orientations), got %d", len(pool.Exact))
	}
	a, b := pool.Exact[0], pool.Exact[1]
	if a.A.Total != 15 || a.B.Total != 15 {
		t.Errorf("Expected 15/15, got %d/%d", a.A.Total, a.B.Total)
	}
	if Token(a) != Token(models.Match{A: b.B, B: b.A}) {
		t.Errorf("Expected the second match to be the A/B swap of the first")
	}
	for _, m := range pool.Exact {
		side := m.A
		if side.Slots[models.RoleSupport].Player != "support-high" {
			side = m.B
		}
		for role := models.RoleTop; role < models.RoleSupport; role++ {
			if got := side.Slots[role].Player; got != role.String()+"-low" {
				t.Errorf("Expected %s-low next to support-high, got %s", role, got)
			}
		}
	}

	picked := Select(pool, models.ModeExact)
	if len(picked) != 2 {
		t.Fatalf("Expected selector to return both matches, got %d", len(picked))
	}
	if Token(picked[0]) == Token(picked[1]) {
		t.Error("Expected two different orientations")
	}
}

func TestBuildPool_RosterValidation(t *testing.T) {
	roster := singleRoleRoster()

	if _, err := BuildPool(roster[:9], nil); !errors.Is(err, ErrRosterSize) {
		t.Errorf("Expected ErrRosterSize, got %v", err)
	}

	dup := append([]models.Player{}, roster...)
	dup[9].Name = dup[0].Name
	_, err := BuildPool(dup, nil)
	if !errors.Is(err, ErrDuplicatePlayer) {
		t.Errorf("Expected ErrDuplicatePlayer, got %v", err)
	}
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation category, got %v", err)
	}

	comma := append([]models.Player{}, roster...)
	comma[3].Name = "Faker,Deft"
	_, err = BuildPool(comma, nil)
	if !errors.Is(err, ErrInvalidName) || !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}

func TestBuildPool_King(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	roster := randomRoster(r)

	t.Run("absent king yields nothing", func(t *testing.T) {
		pool, err := BuildPool(roster, &models.King{Player: "nobody", Role: models.RoleMid})
		if err != nil {
			t.Fatalf("BuildPool failed: %v", err)
		}
		if len(pool.Exact) != 0 || len(pool.Five) != 0 {
			t.Errorf("Expected empty pool, got %d/%d", len(pool.Exact), len(pool.Five))
		}
	})

	t.Run("king always on pinned role", func(t *testing.T) {
		king := models.King{Player: roster[4].Name, Role: models.RoleJungle}
		pool, err := BuildPool(roster, &king)
		if err != nil {
			t.Fatalf("BuildPool failed: %v", err)
		}
		all := Candidates(pool, models.ModeAll)
		if len(all) == 0 {
			t.Fatal("Expected matches with a king")
		}
		for _, m := range all {
			if m.A.Slots[king.Role].Player != king.Player && m.B.Slots[king.Role].Player != king.Player {
				t.Fatalf("king not on %v in match %s", king.Role, Token(m))
			}
			checkSplit(t, roster, m)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := BuildPool(roster, &models.King{Player: roster[0].Name, Role: models.Role(9)})
		if !errors.Is(err, ErrUnknownRole) {
			t.Errorf("Expected ErrUnknownRole, got %v", err)
		}
	})
}

type mapLookup map[string][models.RoleCount]int

func (m mapLookup) Lookup(_ context.Context, name string) ([models.RoleCount]int, bool, error) {
	s, ok := m[name]
	return s, ok, nil
}

func TestResolve_ReportsEveryMissingName(t *testing.T) {
	lookup := mapLookup{"a": {1, 1, 1, 1, 1}}

	_, err := Resolve(context.Background(), lookup, []string{"a", "b", "c"})
	var mp *MissingPlayersError
	if !errors.As(err, &mp) {
		t.Fatalf("Expected MissingPlayersError, got %v", err)
	}
	if len(mp.Names) != 2 || mp.Names[0] != "b" || mp.Names[1] != "c" {
		t.Errorf("Expected [b c], got %v", mp.Names)
	}
	if !errors.Is(err, models.ErrValidation) {
		t.Error("Expected missing players to be a validation error")
	}
}
