// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error categories. Package-level sentinels wrap one of these so the HTTP
// layer can map them without knowing every concrete error.
var (
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
)

// Role is one of the five fixed lane positions, in canonical order.
type Role int

const (
	RoleTop Role = iota
	RoleJungle
	RoleMid
	RoleADC
	RoleSupport
)

// RoleCount is the number of roles and therefore the team size.
const RoleCount = 5

var roleNames = [RoleCount]string{"top", "jungle", "mid", "adc", "support"}

func (r Role) String() string {
	if r < 0 || int(r) >= RoleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Roles returns every role in canonical order.
func Roles() [RoleCount]Role {
	return [RoleCount]Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}
}

// ParseRole accepts the lowercase role names used by String.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Player is a name with one score per role, indexed by Role.
type Player struct {
	Name   string         `json:"name"`
	Scores [RoleCount]int `json:"scores"`
}

// RoleAssignment places one player on one role. Score is always > 0.
type RoleAssignment struct {
	Role   Role   `json:"role"`
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// TeamAssignment is a full five-player lineup with Slots[r].Role == r.
type TeamAssignment struct {
	Slots [RoleCount]RoleAssignment `json:"slots"`
	Total int                       `json:"total"`
}

// Names returns the player names in role order.
func (t TeamAssignment) Names() []string {
	names := make([]string, RoleCount)
	for i, s := range t.Slots {
		names[i] = s.Player
	}
	return names
}

// Match pairs two lineups built from the same ten-player roster.
type Match struct {
	A TeamAssignment `json:"team_a"`
	B TeamAssignment `json:"team_b"`
}

// Diff is |A.Total - B.Total|.
func (m Match) Diff() int {
	d := m.A.Total - m.B.Total
	if d < 0 {
		return -d
	}
	return d
}

// MatchPool holds generated matches by score difference class.
type MatchPool struct {
	Exact []Match
	Five  []Match
}

// King pins one player to one role on whichever side they land.
type King struct {
	Player string `json:"player"`
	Role   Role   `json:"role"`
}

// PendingEntry is a published match link whose outcome has not been recorded.
type PendingEntry struct {
	ID        string
	Link      string
	CreatedAt time.Time
}

// Outcome is one recorded round. Winners and Losers are in role order.
type Outcome struct {
	DateTag  string   `json:"date"`
	RoundTag string   `json:"round"`
	Winners  []string `json:"winners"`
	Losers   []string `json:"losers"`
}

// Mode selects which classes of a MatchPool are sampled.
type Mode string

const (
	ModeAll   Mode = "all"
	ModeExact Mode = "exact"
	ModeFive  Mode = "five"
)

// ParseMode defaults to ModeAll for an empty string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeExact:
		return ModeExact, nil
	case ModeFive:
		return ModeFive, nil
	}
	return "", fmt.Errorf("%w: mode must be one of all, exact, five", ErrValidation)
}

// Title is the heading used when announcing matches drawn in this mode.
func (m Mode) Title() string {
	switch m {
	case ModeExact:
		return "0-point difference"
	case ModeFive:
		return "5-point difference"
	}
	return "All combinations"
}

// Request types

type GenerateMatchesRequest struct {
	Players  []string `json:"players"`
	Mode     string   `json:"mode"`
	King     string   `json:"king,omitempty"`
	KingRole string   `json:"king_role,omitempty"`
	Announce bool     `json:"announce"`
}

type UpsertPlayerRequest struct {
	Scores [RoleCount]int `json:"scores"`
}

type SubmitVoteRequest struct {
	Voter  string `json:"voter"`
	Choice *int   `json:"choice"`
}

type SubmitResultRequest struct {
	Link   string `json:"link"`
	Round1 string `json:"round1"`
	Round2 string `json:"round2,omitempty"`
}

type ResolvePendingRequest struct {
	Link string `json:"link"`
}

// Response types

type MatchView struct {
	Match
	Link string `json:"link"`
	Diff int    `json:"diff"`
}

type GenerateMatchesResponse struct {
	Mode    Mode        `json:"mode"`
	Exact   int         `json:"exact_count"`
	Five    int         `json:"five_count"`
	Matches []MatchView `json:"matches"`
	PollID  string      `json:"poll_id,omitempty"`
}

type PollOptionView struct {
	Label string `json:"label"`
	Link  string `json:"link"`
	Votes *int   `json:"votes,omitempty"`
}

type PollView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	Options   []PollOptionView `json:"options"`
	VoteCount int              `json:"vote_count"`
	OpenedAgo string           `json:"opened_ago"`
	Winner    *int             `json:"winner,omitempty"`
	Tie       bool             `json:"tie,omitempty"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

type ClosePollResponse struct {
	Tally     []int  `json:"tally"`
	Winner    *int   `json:"winner,omitempty"`
	Tie       bool   `json:"tie"`
	Link      string `json:"link,omitempty"`
	Announced bool   `json:"announced"`
}

type SubmitResultResponse struct {
	Recorded int `json:"recorded"`
}

type InteractionResponse struct {
	Type int              `json:"type"`
	Data *InteractionData `json:"data,omitempty"`
}

type InteractionData struct {
	Content string `json:"content"`
	Flags   int    `json:"flags,omitempty"`
}

type PendingView struct {
	Link    string `json:"link"`
	AddedAt string `json:"added_at"`
	Age     string `json:"age"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
