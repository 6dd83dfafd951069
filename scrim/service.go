// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scrim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/danielhkuo/scrim-pick/auth"
	"github.com/danielhkuo/scrim-pick/matchmaker"
	"github.com/danielhkuo/scrim-pick/models"
	"github.com/danielhkuo/scrim-pick/poll"
	"github.com/danielhkuo/scrim-pick/worker"
)

type Config struct {
	BaseURL      string
	AdminKeySalt string
	Workers      int
	QueueSize    int
}

// Deps are the collaborators a Service talks to.
type Deps struct {
	Scores    ScoreStore
	Pending   PendingLedger
	Results   ResultLedger
	Announcer Announcer
	Polls     *poll.Registry
}

// Service ties match generation, polls, announcements and result
// recording together. It owns the background queue; call Close on shutdown.
type Service struct {
	scores    ScoreStore
	pending   PendingLedger
	results   ResultLedger
	announcer Announcer
	polls     *poll.Registry
	queue     *worker.Queue
	cfg       Config

	now     func() time.Time
	pick    func(n int) int
	drained chan struct{}
}

func NewService(ctx context.Context, deps Deps, cfg Config) *Service {
	polls := deps.Polls
	if polls == nil {
		polls = poll.NewRegistry()
	}
	s := &Service{
		scores:    deps.Scores,
		pending:   deps.Pending,
		results:   deps.Results,
		announcer: deps.Announcer,
		polls:     polls,
		queue:     worker.New(ctx, cfg.Workers, cfg.QueueSize),
		cfg:       cfg,
		now:       time.Now,
		pick:      rand.IntN,
		drained:   make(chan struct{}),
	}
	go s.reportFailures(ctx)
	return s
}

// Close stops accepting background work and waits for queued jobs.
func (s *Service) Close() {
	s.queue.Close()
	<-s.drained
}

// Polls exposes the registry for read-only views.
func (s *Service) Polls() *poll.Registry {
	return s.polls
}

func (s *Service) reportFailures(ctx context.Context) {
	defer close(s.drained)
	for f := range s.queue.Failures() {
		s.announcer.SendText(ctx, fmt.Sprintf("⚠️ %s failed: %v", f.Name, f.Err))
	}
}

// Request describes one match generation.
type Request struct {
	Names []string
	Mode  models.Mode
	King  *models.King
}

// Generated is the outcome of Generate.
type Generated struct {
	Mode       models.Mode
	ExactCount int
	FiveCount  int
	Matches    []models.Match
}

// Generate resolves the roster, builds the full match pool and samples up
// to three matches from the requested mode.
func (s *Service) Generate(ctx context.Context, req Request) (Generated, error) {
	if err := matchmaker.ValidateRoster(req.Names); err != nil {
		return Generated{}, err
	}
	players, err := matchmaker.Resolve(ctx, s.scores, req.Names)
	if err != nil {
		return Generated{}, err
	}
	pool, err := matchmaker.BuildPool(players, req.King)
	if err != nil {
		return Generated{}, err
	}

	picks := matchmaker.Select(pool, req.Mode)
	slog.Info("matches generated", "mode", req.Mode, "exact", len(pool.Exact), "five", len(pool.Five), "picked", len(picks))
	return Generated{
		Mode:       req.Mode,
		ExactCount: len(pool.Exact),
		FiveCount:  len(pool.Five),
		Matches:    picks,
	}, nil
}

// Link is the public match link for m.
func (s *Service) Link(m models.Match) string {
	return matchmaker.Link(s.cfg.BaseURL, m)
}

// VoteLink is the web page for a named poll.
func (s *Service) VoteLink(pollID string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/polls/" + pollID
}

// CloseLink carries the poll's close key.
func (s *Service) CloseLink(pollID string) string {
	return s.VoteLink(pollID) + "/close?key=" + auth.GenerateAdminKey(pollID, s.cfg.AdminKeySalt)
}

// Announce opens a named poll and replaces the current poll with the given
// matches, then queues the chat announcement. It returns the named poll id,
// or "" when there was nothing to vote on. If the announcement cannot be
// queued no poll is opened and the current poll is kept.
func (s *Service) Announce(mode models.Mode, matches []models.Match) (string, error) {
	if len(matches) == 0 {
		return "", s.queue.Submit("announce", func(ctx context.Context) error {
			s.announcer.SendText(ctx, "No combinations satisfy the condition.")
			return nil
		})
	}

	sess, err := s.openPolls(mode, matches, func(sess *poll.Session) error {
		return s.queue.Submit("announce", func(ctx context.Context) error {
			s.sendAnnouncement(ctx, mode, matches, sess)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return sess.ID(), nil
}

// openPolls registers the named and current polls for matches once commit
// succeeds.
func (s *Service) openPolls(mode models.Mode, matches []models.Match, commit func(*poll.Session) error) (*poll.Session, error) {
	options := make([]poll.Option, len(matches))
	for i, m := range matches {
		options[i] = poll.Option{Label: optionLabel(i), Link: s.Link(m), Match: m}
	}
	return s.polls.Open(mode.Title()+" vote", options, commit)
}

func (s *Service) sendAnnouncement(ctx context.Context, mode models.Mode, matches []models.Match, sess *poll.Session) {
	s.announcer.SendLong(ctx, announcementText(mode, matches))
	s.announcer.SendText(ctx, pollMessage(s.VoteLink(sess.ID()), s.CloseLink(sess.ID())))
}

// RequestScrim parses free-form roster text and queues generation plus
// announcement. Problems with the roster are reported in chat, not
// returned; the only error is a full or closed queue.
func (s *Service) RequestScrim(rosterText string, mode models.Mode) error {
	names := matchmaker.ParseRoster(rosterText)
	return s.queue.Submit("scrim", func(ctx context.Context) error {
		gen, err := s.Generate(ctx, Request{Names: names, Mode: mode})
		if errors.Is(err, models.ErrValidation) {
			s.announcer.SendText(ctx, "⚠️ "+err.Error())
			return nil
		}
		if err != nil {
			return err
		}
		if len(gen.Matches) == 0 {
			s.announcer.SendText(ctx, "No combinations satisfy the condition.")
			return nil
		}
		sess, err := s.openPolls(mode, gen.Matches, nil)
		if err != nil {
			return err
		}
		s.sendAnnouncement(ctx, mode, gen.Matches, sess)
		return nil
	})
}

// Vote casts a vote on the current poll. option is zero-based.
func (s *Service) Vote(identity string, option int) error {
	return s.polls.Vote(identity, option)
}

// RequestPublish takes the current poll out of its slot and queues the
// result announcement. Returns poll.ErrNoActivePoll when there is nothing
// to publish.
func (s *Service) RequestPublish() error {
	snap, err := s.polls.PublishAndClear()
	if err != nil {
		return err
	}
	err = s.queue.Submit("publish", func(ctx context.Context) error {
		s.publishSnapshot(ctx, snap)
		return nil
	})
	if err != nil {
		slog.Error("failed to queue poll publish, snapshot dropped", "votes", len(snap.Votes), "error", err)
	}
	return err
}

func (s *Service) publishSnapshot(ctx context.Context, snap poll.Snapshot) {
	res := snap.Tally(s.pick)
	unresolved := s.Pending(ctx)

	title := "**Poll result**"
	switch {
	case !res.HasWinner():
		title = "**Poll result: no votes**"
	case res.Tie:
		title = "**Poll result (tie, picked at random)**"
	}
	lines := []string{title, tallyBlock(nil, res.Tally)}

	if opt, ok := snap.Winner(res); ok {
		lines = append(lines, recordLines(opt.Link, s.recorder(opt.Link))...)
		s.announcer.SendPayload(ctx, resultPayload(strings.Join(lines, "\n"), opt.Link))
		if err := s.pending.Append(ctx, opt.Link); err != nil {
			slog.Error("failed to add pending match", "link", opt.Link, "error", err)
		}
	} else {
		s.announcer.SendLong(ctx, strings.Join(lines, "\n"))
	}

	if len(unresolved) > 0 {
		s.announcer.SendLong(ctx, "⚠️ Matches without a recorded outcome:\n"+strings.Join(unresolvedLines(unresolved), "\n"))
	}
}

// ClosedPoll is what ClosePoll reports back to the caller.
type ClosedPoll struct {
	Result    poll.Result
	Link      string
	Announced bool
}

// ClosePoll closes a named poll with its close key and announces the
// outcome. The poll is closed even if the announcement fails.
func (s *Service) ClosePoll(ctx context.Context, pollID, key string) (ClosedPoll, error) {
	sess, err := s.polls.Get(pollID)
	if err != nil {
		return ClosedPoll{}, err
	}
	if err := auth.ValidateAdminKey(pollID, key, s.cfg.AdminKeySalt); err != nil {
		return ClosedPoll{}, ErrInvalidCloseKey
	}

	res, err := sess.Close()
	if err != nil {
		return ClosedPoll{}, err
	}
	unresolved := s.Pending(ctx)

	title := "**Poll closed: " + sess.Title() + "**"
	if res.Tie {
		title += " (tie, picked at random)"
	}
	if !res.HasWinner() {
		title += "\n(no votes)"
	}
	labels := make([]string, 0, len(sess.Options()))
	for _, o := range sess.Options() {
		labels = append(labels, o.Label)
	}
	lines := []string{title, tallyBlock(labels, res.Tally)}
	if len(unresolved) > 0 {
		lines = append(lines, "⚠️ Earlier matches without a recorded outcome:")
		lines = append(lines, unresolvedLines(unresolved)...)
	}

	out := ClosedPoll{Result: res}
	if opt, ok := sess.WinningOption(res); ok {
		out.Link = opt.Link
		lines = append(lines, recordLines(opt.Link, s.recorder(opt.Link))...)
		if err := s.pending.Append(ctx, opt.Link); err != nil {
			slog.Error("failed to add pending match", "link", opt.Link, "error", err)
		}
	}

	out.Announced = s.announcer.SendLong(ctx, strings.Join(lines, "\n"))
	slog.Info("poll closed", "poll_id", pollID, "winner", res.Winner, "tie", res.Tie, "announced", out.Announced)
	return out, nil
}

// recorder picks one of the ten players in link to record the outcome.
func (s *Service) recorder(link string) string {
	a, b, err := matchmaker.ParseLink(link)
	if err != nil {
		return "(recorder pick failed)"
	}
	ten := append(a, b...)
	return ten[s.pick(len(ten))]
}

// Pending lists unresolved match links. Store failures are logged and
// yield an empty list.
func (s *Service) Pending(ctx context.Context) []models.PendingEntry {
	entries, err := s.pending.FetchUnresolved(ctx)
	if err != nil {
		slog.Error("failed to fetch pending matches", "error", err)
		return []models.PendingEntry{}
	}
	return entries
}

// ResolvePending marks the oldest pending row for link as done without
// recording an outcome.
func (s *Service) ResolvePending(ctx context.Context, link string) (bool, error) {
	return s.pending.MarkDone(ctx, strings.TrimSpace(link))
}

// DecodeLink rebuilds the match behind a link from current scores.
func (s *Service) DecodeLink(ctx context.Context, link string) (models.Match, error) {
	return matchmaker.DecodeLink(ctx, s.scores, link)
}

// TestMessage sends a tagged message through the relay.
func (s *Service) TestMessage(ctx context.Context, msg string) bool {
	return s.announcer.SendText(ctx, "[test] "+msg)
}
