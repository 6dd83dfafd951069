// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CurrentTitle names the chat-driven poll held in the current slot.
const CurrentTitle = "current"

// Snapshot is a detached copy of the current poll taken at publish time.
type Snapshot struct {
	Options   []Option
	Votes     map[string]int
	CreatedAt time.Time
}

// Tally counts the snapshot's votes. See the package-level Tally.
func (s Snapshot) Tally(pick func(n int) int) Result {
	return Tally(len(s.Options), s.Votes, pick)
}

// Winner returns the winning option for res, if any.
func (s Snapshot) Winner(res Result) (Option, bool) {
	if !res.HasWinner() || res.Winner >= len(s.Options) {
		return Option{}, false
	}
	return s.Options[res.Winner], true
}

// Registry owns the named polls and the single current poll slot.
type Registry struct {
	mu    sync.RWMutex
	polls map[string]*Session

	currentMu sync.Mutex
	current   *Session

	now  func() time.Time
	pick func(n int) int
}

func NewRegistry() *Registry {
	return &Registry{
		polls: make(map[string]*Session),
		now:   time.Now,
	}
}

// WithPicker replaces the tie-break function used by new sessions.
func (r *Registry) WithPicker(pick func(n int) int) *Registry {
	r.pick = pick
	return r
}

// Create registers a new named poll.
func (r *Registry) Create(title string, options []Option) (*Session, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	s := newSession(uuid.NewString(), title, options, r.now(), r.pick)

	r.mu.Lock()
	r.polls[s.id] = s
	r.mu.Unlock()

	slog.Info("poll created", "poll_id", s.id, "options", len(options))
	return s, nil
}

// Open creates a named poll and a current poll over the same options in
// one step. commit runs after both are built and before either is visible;
// if it fails the registry is left untouched and its error is returned.
// A nil commit always succeeds.
func (r *Registry) Open(title string, options []Option, commit func(named *Session) error) (*Session, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	now := r.now()
	named := newSession(uuid.NewString(), title, options, now, r.pick)
	current := newSession(uuid.NewString(), CurrentTitle, options, now, r.pick)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentMu.Lock()
	defer r.currentMu.Unlock()

	if commit != nil {
		if err := commit(named); err != nil {
			return nil, err
		}
	}
	r.polls[named.id] = named
	r.current = current

	slog.Info("poll opened", "poll_id", named.id, "options", len(options))
	return named, nil
}

// Get looks up a named poll.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.polls[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// CreateCurrent replaces the current poll with a fresh one; votes cast on
// the previous current poll are discarded.
func (r *Registry) CreateCurrent(options []Option) error {
	if len(options) == 0 {
		return ErrNoOptions
	}
	s := newSession(uuid.NewString(), CurrentTitle, options, r.now(), r.pick)

	r.currentMu.Lock()
	r.current = s
	r.currentMu.Unlock()
	return nil
}

// Vote records a vote on the current poll. An empty identity is replaced
// by a fresh random one, so each anonymous vote counts separately.
func (r *Registry) Vote(identity string, option int) error {
	r.currentMu.Lock()
	defer r.currentMu.Unlock()
	if r.current == nil {
		return ErrNoActivePoll
	}
	if identity == "" {
		identity = uuid.NewString()
	}
	return r.current.SubmitVote(identity, option)
}

// HasCurrent reports whether the current slot holds a poll.
func (r *Registry) HasCurrent() bool {
	r.currentMu.Lock()
	defer r.currentMu.Unlock()
	return r.current != nil
}

// PublishAndClear detaches the current poll and empties the slot in one
// step. Votes arriving afterwards fail with ErrNoActivePoll.
func (r *Registry) PublishAndClear() (Snapshot, error) {
	r.currentMu.Lock()
	defer r.currentMu.Unlock()
	if r.current == nil {
		return Snapshot{}, ErrNoActivePoll
	}
	snap := r.current.snapshot()
	r.current = nil
	return snap, nil
}
