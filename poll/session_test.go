// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/scrim-pick/models"
)

func threeOptions() []Option {
	return []Option{{Label: "1"}, {Label: "2"}, {Label: "3"}}
}

func TestSession_SubmitVote(t *testing.T) {
	s := newSession("id", "title", threeOptions(), time.Now(), nil)

	tests := []struct {
		name    string
		voter   string
		option  int
		wantErr error
	}{
		{"valid", "alice", 0, nil},
		{"revote", "alice", 2, nil},
		{"negative", "bob", -1, ErrInvalidOption},
		{"too large", "bob", 3, ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SubmitVote(tt.voter, tt.option)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if s.VoteCount() != 1 {
		t.Errorf("Expected 1 voter, got %d", s.VoteCount())
	}
	res, err := s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if res.Winner != 2 || res.Tally[2] != 1 || res.Tally[0] != 0 {
		t.Errorf("Expected the last vote to count, got %+v", res)
	}
}

func TestSession_CloseIsFinal(t *testing.T) {
	s := newSession("id", "title", threeOptions(), time.Now(), nil)
	_ = s.SubmitVote("a", 1)

	first, err := s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.Status() != StatusClosed {
		t.Errorf("Expected closed status, got %s", s.Status())
	}

	if _, err := s.Close(); !errors.Is(err, ErrAlreadyClosed) {
		t.Errorf("Expected ErrAlreadyClosed, got %v", err)
	}
	err = s.SubmitVote("b", 2)
	if !errors.Is(err, ErrSessionClosed) || !errors.Is(err, models.ErrState) {
		t.Errorf("Expected closed state error, got %v", err)
	}

	stored, ok := s.Result()
	if !ok {
		t.Fatal("Expected stored result")
	}
	if stored.Winner != first.Winner || fmt.Sprint(stored.Tally) != fmt.Sprint(first.Tally) {
		t.Errorf("stored result %+v differs from close result %+v", stored, first)
	}
	opt, ok := s.WinningOption(stored)
	if !ok || opt.Label != "2" {
		t.Errorf("Expected option 2 to win, got %+v", opt)
	}
}

func TestSession_CloseResultIsACopy(t *testing.T) {
	s := newSession("id", "title", threeOptions(), time.Now(), nil)
	_ = s.SubmitVote("a", 1)

	first, err := s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	first.Tally[1] = 99

	stored, _ := s.Result()
	if stored.Tally[1] != 1 {
		t.Errorf("Expected stored tally to stay 1, got %d", stored.Tally[1])
	}
}

func TestSession_ResultWhileOpen(t *testing.T) {
	s := newSession("id", "title", threeOptions(), time.Now(), nil)
	if _, ok := s.Result(); ok {
		t.Error("Expected no result while open")
	}
}

// Every vote either lands before Close and is counted, or fails with
// ErrSessionClosed.
func TestSession_ConcurrentVoteAndClose(t *testing.T) {
	for round := 0; round < 20; round++ {
		s := newSession("id", "title", threeOptions(), time.Now(), nil)

		var accepted atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				err := s.SubmitVote(fmt.Sprintf("voter-%d", i), i%3)
				switch {
				case err == nil:
					accepted.Add(1)
				case errors.Is(err, ErrSessionClosed):
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}

		var res Result
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var err error
			res, err = s.Close()
			if err != nil {
				t.Errorf("Close failed: %v", err)
			}
		}()

		close(start)
		wg.Wait()

		total := 0
		for _, c := range res.Tally {
			total += c
		}
		if total != int(accepted.Load()) {
			t.Fatalf("tally counted %d votes but %d were accepted", total, accepted.Load())
		}
	}
}
