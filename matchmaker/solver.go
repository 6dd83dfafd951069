// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"github.com/danielhkuo/scrim-pick/models"
)

// Team is the five players on one side of a split.
type Team [models.RoleCount]models.Player

var (
	perms5 = permutations(5)
	perms4 = permutations(4)
)

// Solve returns every valid player-to-role bijection for team. A bijection
// is valid when every assigned score is positive. With a king, the king's
// role is fixed and only the other four players are permuted; a king who
// is not on this team yields no assignments.
func Solve(team Team, king *models.King) []models.TeamAssignment {
	if king == nil {
		return solveFree(team)
	}
	return solvePinned(team, *king)
}

func solveFree(team Team) []models.TeamAssignment {
	var out []models.TeamAssignment
	for _, perm := range perms5 {
		var t models.TeamAssignment
		ok := true
		for i, p := range team {
			role := perm[i]
			score := p.Scores[role]
			if score <= 0 {
				ok = false
				break
			}
			t.Slots[role] = models.RoleAssignment{Role: models.Role(role), Player: p.Name, Score: score}
			t.Total += score
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

func solvePinned(team Team, king models.King) []models.TeamAssignment {
	if king.Role < 0 || int(king.Role) >= models.RoleCount {
		return nil
	}
	kingIdx := -1
	for i, p := range team {
		if p.Name == king.Player {
			kingIdx = i
			break
		}
	}
	if kingIdx < 0 {
		return nil
	}
	kingScore := team[kingIdx].Scores[king.Role]
	if kingScore <= 0 {
		return nil
	}

	others := make([]int, 0, models.RoleCount-1)
	for i := range team {
		if i != kingIdx {
			others = append(others, i)
		}
	}
	roles := make([]int, 0, models.RoleCount-1)
	for r := 0; r < models.RoleCount; r++ {
		if r != int(king.Role) {
			roles = append(roles, r)
		}
	}

	var out []models.TeamAssignment
	for _, perm := range perms4 {
		var t models.TeamAssignment
		t.Slots[king.Role] = models.RoleAssignment{Role: king.Role, Player: king.Player, Score: kingScore}
		t.Total = kingScore
		ok := true
		for j, pi := range others {
			role := roles[perm[j]]
			score := team[pi].Scores[role]
			if score <= 0 {
				ok = false
				break
			}
			t.Slots[role] = models.RoleAssignment{Role: models.Role(role), Player: team[pi].Name, Score: score}
			t.Total += score
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// permutations returns all orderings of 0..n-1 in lexicographic order.
func permutations(n int) [][]int {
	var out [][]int
	cur := make([]int, 0, n)
	used := make([]bool, n)
	var walk func()
	walk = func() {
		if len(cur) == n {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, i)
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	walk()
	return out
}
