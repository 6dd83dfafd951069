// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"context"
	"net/url"
	"strings"

	"github.com/danielhkuo/scrim-pick/models"
)

// ComboPath is the route that renders a match from its link.
const ComboPath = "/combo"

// Token encodes both rosters in role order as "a=...&b=...".
func Token(m models.Match) string {
	return NamesToken(m.A.Names(), m.B.Names())
}

// NamesToken is Token for bare name lists.
func NamesToken(a, b []string) string {
	v := url.Values{}
	v.Set("a", strings.Join(a, ","))
	v.Set("b", strings.Join(b, ","))
	return v.Encode()
}

// Link is the absolute URL for a match.
func Link(baseURL string, m models.Match) string {
	return NamesLink(baseURL, m.A.Names(), m.B.Names())
}

// NamesLink is Link for bare name lists. Parsing any link and rebuilding
// it with NamesLink yields the canonical form stored in the ledgers.
func NamesLink(baseURL string, a, b []string) string {
	return strings.TrimRight(baseURL, "/") + ComboPath + "?" + NamesToken(a, b)
}

// ParseLink accepts a full link or a bare token and returns the two name
// lists. Each list must hold exactly five names.
func ParseLink(link string) (a, b []string, err error) {
	query := strings.TrimSpace(link)
	if i := strings.IndexByte(query, '?'); i >= 0 {
		query = query[i+1:]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, nil, ErrInvalidLink
	}
	a = splitNames(values.Get("a"))
	b = splitNames(values.Get("b"))
	if len(a) != models.RoleCount || len(b) != models.RoleCount {
		return nil, nil, ErrInvalidLink
	}
	return a, b, nil
}

// DecodeLink rebuilds the match behind a link, re-resolving every name.
func DecodeLink(ctx context.Context, scores ScoreLookup, link string) (models.Match, error) {
	a, b, err := ParseLink(link)
	if err != nil {
		return models.Match{}, err
	}
	players, err := Resolve(ctx, scores, append(append([]string{}, a...), b...))
	if err != nil {
		return models.Match{}, err
	}
	return models.Match{
		A: lineup(players[:models.RoleCount]),
		B: lineup(players[models.RoleCount:]),
	}, nil
}

// lineup assigns players to roles by position.
func lineup(players []models.Player) models.TeamAssignment {
	var t models.TeamAssignment
	for i, p := range players {
		t.Slots[i] = models.RoleAssignment{Role: models.Role(i), Player: p.Name, Score: p.Scores[i]}
		t.Total += p.Scores[i]
	}
	return t
}

func splitNames(csv string) []string {
	var names []string
	for _, n := range strings.Split(csv, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
