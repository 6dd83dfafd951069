// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scrim

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/scrim-pick/dispatch"
	"github.com/danielhkuo/scrim-pick/matchmaker"
	"github.com/danielhkuo/scrim-pick/models"
)

// Round winners. Skip is only valid for round 2.
const (
	WinnerA = "A"
	WinnerB = "B"
	Skip    = "N"
)

const (
	resultPrefix = "res"
	dateLayout   = "06/1/2"
)

// RoundResult is the outcome of one round of a match.
type RoundResult struct {
	Round  int
	Winner string
}

func (r RoundResult) validate() error {
	switch r.Round {
	case 1:
		if r.Winner != WinnerA && r.Winner != WinnerB {
			return ErrInvalidResult
		}
	case 2:
		if r.Winner != WinnerA && r.Winner != WinnerB && r.Winner != Skip {
			return ErrInvalidResult
		}
	default:
		return ErrInvalidRound
	}
	return nil
}

func roundTag(round int) string {
	return strconv.Itoa(round) + "RD"
}

// RecordOutcome writes one ledger row per decided round, winners first,
// then marks the link's oldest pending entry as done. Skipped rounds write
// nothing; if every round is skipped the pending entry is left alone. It
// returns the number of rows written.
func (s *Service) RecordOutcome(ctx context.Context, link string, rounds ...RoundResult) (int, error) {
	if len(rounds) == 0 {
		return 0, ErrInvalidResult
	}
	for _, r := range rounds {
		if err := r.validate(); err != nil {
			return 0, err
		}
	}
	a, b, err := matchmaker.ParseLink(link)
	if err != nil {
		return 0, err
	}

	date := s.now().Format(dateLayout)
	var outcomes []models.Outcome
	for _, r := range rounds {
		switch r.Winner {
		case WinnerA:
			outcomes = append(outcomes, models.Outcome{DateTag: date, RoundTag: roundTag(r.Round), Winners: a, Losers: b})
		case WinnerB:
			outcomes = append(outcomes, models.Outcome{DateTag: date, RoundTag: roundTag(r.Round), Winners: b, Losers: a})
		}
	}
	if len(outcomes) == 0 {
		return 0, nil
	}

	for i, o := range outcomes {
		if err := s.results.AppendOutcome(ctx, o); err != nil {
			return i, fmt.Errorf("append outcome: %w", err)
		}
	}

	canonical := matchmaker.NamesLink(s.cfg.BaseURL, a, b)
	if done, err := s.pending.MarkDone(ctx, canonical); err != nil {
		slog.Error("failed to resolve pending match", "link", canonical, "error", err)
	} else if !done {
		slog.Info("no pending entry for recorded match", "link", canonical)
	}

	slog.Info("outcome recorded", "rows", len(outcomes), "date", date)
	return len(outcomes), nil
}

// ResultCustomID builds the button id for one round result.
func ResultCustomID(round int, winner, link string) string {
	return strings.Join([]string{resultPrefix, strconv.Itoa(round), winner, url.QueryEscape(link)}, "|")
}

// ParseResultCustomID reverses ResultCustomID.
func ParseResultCustomID(id string) (RoundResult, string, error) {
	parts := strings.SplitN(strings.TrimSpace(id), "|", 4)
	if len(parts) != 4 || parts[0] != resultPrefix {
		return RoundResult{}, "", ErrInvalidCustomID
	}
	round, err := strconv.Atoi(parts[1])
	if err != nil {
		return RoundResult{}, "", ErrInvalidRound
	}
	link, err := url.QueryUnescape(parts[3])
	if err != nil {
		return RoundResult{}, "", ErrInvalidCustomID
	}
	return RoundResult{Round: round, Winner: parts[2]}, link, nil
}

// RecordFromButton handles a result button press.
func (s *Service) RecordFromButton(ctx context.Context, customID string) (RoundResult, int, error) {
	r, link, err := ParseResultCustomID(customID)
	if err != nil {
		return RoundResult{}, 0, err
	}
	n, err := s.RecordOutcome(ctx, link, r)
	return r, n, err
}

func resultPayload(content, link string) dispatch.Payload {
	buttons := []struct {
		round  int
		winner string
		style  dispatch.ButtonStyle
		label  string
	}{
		{1, WinnerA, dispatch.StyleSuccess, "1R A wins"},
		{1, WinnerB, dispatch.StyleDanger, "1R B wins"},
		{2, WinnerA, dispatch.StyleSuccess, "2R A wins"},
		{2, WinnerB, dispatch.StyleDanger, "2R B wins"},
		{2, Skip, dispatch.StyleSecondary, "2R not played"},
	}

	var rounds [2][]dispatch.Button
	for _, btn := range buttons {
		id := ResultCustomID(btn.round, btn.winner, link)
		if len(id) > dispatch.MaxCustomIDLen {
			slog.Warn("button id exceeds chat limit", "length", len(id), "link", link)
		}
		rounds[btn.round-1] = append(rounds[btn.round-1], dispatch.NewButton(btn.style, btn.label, id))
	}
	return dispatch.Payload{
		Content:    content,
		Components: []dispatch.ActionRow{dispatch.NewActionRow(rounds[0]...), dispatch.NewActionRow(rounds[1]...)},
	}
}
