// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/scrim-pick/models"
)

const (
	pendingStatus = "pending"
	doneStatus    = "done"
)

// Store implements the score lookup and both ledgers on one connection.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn, now: time.Now}
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(v int64) time.Time {
	return time.Unix(0, v).UTC()
}

// Lookup returns the per-role scores for name. ok is false when the player
// is unknown.
func (s *Store) Lookup(ctx context.Context, name string) ([models.RoleCount]int, bool, error) {
	var sc [models.RoleCount]int
	err := s.conn.QueryRowContext(ctx, `
		SELECT top, jungle, mid, adc, support
		FROM player_score
		WHERE name = $1
	`, name).Scan(&sc[models.RoleTop], &sc[models.RoleJungle], &sc[models.RoleMid], &sc[models.RoleADC], &sc[models.RoleSupport])
	if errors.Is(err, sql.ErrNoRows) {
		return sc, false, nil
	}
	if err != nil {
		return sc, false, fmt.Errorf("query player score: %w", err)
	}
	return sc, true, nil
}

// UpsertPlayer creates or replaces a player's scores.
func (s *Store) UpsertPlayer(ctx context.Context, p models.Player) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: player name is required", models.ErrValidation)
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO player_score (name, top, jungle, mid, adc, support, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			top = EXCLUDED.top,
			jungle = EXCLUDED.jungle,
			mid = EXCLUDED.mid,
			adc = EXCLUDED.adc,
			support = EXCLUDED.support,
			updated_at = EXCLUDED.updated_at
	`, name, p.Scores[models.RoleTop], p.Scores[models.RoleJungle], p.Scores[models.RoleMid],
		p.Scores[models.RoleADC], p.Scores[models.RoleSupport], toNanos(s.now()))
	if err != nil {
		return fmt.Errorf("upsert player score: %w", err)
	}
	return nil
}

// Append adds link to the pending ledger. The same link may be pending
// more than once.
func (s *Store) Append(ctx context.Context, link string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO pending_match (id, link, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), link, pendingStatus, toNanos(s.now()))
	if err != nil {
		return fmt.Errorf("insert pending match: %w", err)
	}
	return nil
}

// FetchUnresolved lists pending links oldest first.
func (s *Store) FetchUnresolved(ctx context.Context) ([]models.PendingEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, link, created_at
		FROM pending_match
		WHERE status = $1
		ORDER BY created_at, id
	`, pendingStatus)
	if err != nil {
		return nil, fmt.Errorf("query pending matches: %w", err)
	}
	defer rows.Close()

	entries := []models.PendingEntry{}
	for rows.Next() {
		var e models.PendingEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.Link, &created); err != nil {
			return nil, fmt.Errorf("scan pending match: %w", err)
		}
		e.CreatedAt = fromNanos(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending matches: %w", err)
	}
	return entries, nil
}

// MarkDone resolves the oldest pending row for link. It reports false when
// no such row exists.
func (s *Store) MarkDone(ctx context.Context, link string) (bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM pending_match
		WHERE link = $1 AND status = $2
		ORDER BY created_at, id
		LIMIT 1
	`, link, pendingStatus).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query pending match: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pending_match
		SET status = $1, resolved_at = $2
		WHERE id = $3
	`, doneStatus, toNanos(s.now()), id)
	if err != nil {
		return false, fmt.Errorf("update pending match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

// AppendOutcome records one round.
func (s *Store) AppendOutcome(ctx context.Context, o models.Outcome) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO match_result (id, date_tag, round_tag, winners, losers, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), o.DateTag, o.RoundTag, strings.Join(o.Winners, ","), strings.Join(o.Losers, ","), toNanos(s.now()))
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}
	return nil
}

// Outcomes returns recorded rounds, newest first, at most limit rows.
func (s *Store) Outcomes(ctx context.Context, limit int) ([]models.Outcome, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT date_tag, round_tag, winners, losers
		FROM match_result
		ORDER BY recorded_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query match results: %w", err)
	}
	defer rows.Close()

	outcomes := []models.Outcome{}
	for rows.Next() {
		var o models.Outcome
		var winners, losers string
		if err := rows.Scan(&o.DateTag, &o.RoundTag, &winners, &losers); err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		o.Winners = strings.Split(winners, ",")
		o.Losers = strings.Split(losers, ",")
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match results: %w", err)
	}
	return outcomes, nil
}
