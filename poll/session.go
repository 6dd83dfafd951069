// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"sync"
	"time"

	"github.com/danielhkuo/scrim-pick/models"
)

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Option is one choice in a poll, normally a generated match and its link.
type Option struct {
	Label string
	Link  string
	Match models.Match
}

// Session is a single poll. Votes are keyed by voter identity and the last
// vote from an identity wins. All methods are safe for concurrent use.
type Session struct {
	id        string
	title     string
	options   []Option
	createdAt time.Time

	mu     sync.Mutex
	votes  map[string]int
	status Status
	result Result
	pick   func(n int) int
}

func newSession(id, title string, options []Option, now time.Time, pick func(int) int) *Session {
	return &Session{
		id:        id,
		title:     title,
		options:   append([]Option(nil), options...),
		createdAt: now,
		votes:     make(map[string]int),
		status:    StatusOpen,
		pick:      pick,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Title() string        { return s.title }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Options returns a copy of the poll's options.
func (s *Session) Options() []Option {
	return append([]Option(nil), s.options...)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) VoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.votes)
}

// SubmitVote records voter's choice, replacing any earlier vote.
func (s *Session) SubmitVote(voter string, option int) error {
	if option < 0 || option >= len(s.options) {
		return ErrInvalidOption
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusClosed {
		return ErrSessionClosed
	}
	s.votes[voter] = option
	return nil
}

// Close tallies the votes and closes the poll. The result is computed once;
// later calls return ErrAlreadyClosed.
func (s *Session) Close() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusClosed {
		return Result{}, ErrAlreadyClosed
	}
	s.result = Tally(len(s.options), s.votes, s.pick)
	s.status = StatusClosed
	res := s.result
	res.Tally = append([]int(nil), s.result.Tally...)
	return res, nil
}

// Result returns the stored outcome, or false while the poll is open.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusClosed {
		return Result{}, false
	}
	res := s.result
	res.Tally = append([]int(nil), s.result.Tally...)
	return res, true
}

// WinningOption returns the option behind a result's winner.
func (s *Session) WinningOption(res Result) (Option, bool) {
	if !res.HasWinner() || res.Winner >= len(s.options) {
		return Option{}, false
	}
	return s.options[res.Winner], true
}

// snapshot copies the options and votes.
func (s *Session) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	votes := make(map[string]int, len(s.votes))
	for k, v := range s.votes {
		votes[k] = v
	}
	return Snapshot{
		Options:   append([]Option(nil), s.options...),
		Votes:     votes,
		CreatedAt: s.createdAt,
	}
}
