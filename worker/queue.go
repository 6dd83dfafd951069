// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrQueueFull   = errors.New("work queue is full")
	ErrQueueClosed = errors.New("work queue is closed")
)

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Failure reports a task that returned an error or panicked.
type Failure struct {
	Name string
	Err  error
}

type job struct {
	name string
	fn   Task
}

// Queue runs submitted tasks on a fixed set of goroutines. Submissions
// never block: when the buffer is full Submit returns ErrQueueFull.
type Queue struct {
	ctx      context.Context
	jobs     chan job
	failures chan Failure
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts workers goroutines reading from a buffer of size tasks.
// Tasks receive ctx.
func New(ctx context.Context, workers, size int) *Queue {
	if workers < 1 {
		workers = 1
	}
	if size < 1 {
		size = 1
	}
	q := &Queue{
		ctx:      ctx,
		jobs:     make(chan job, size),
		failures: make(chan Failure, size),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	return q
}

// Submit enqueues fn under name.
func (q *Queue) Submit(name string, fn Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job{name: name, fn: fn}:
		return nil
	default:
		slog.Warn("work queue full, rejecting task", "task", name)
		return ErrQueueFull
	}
}

// Failures delivers task errors and recovered panics. The channel is
// closed by Close once every worker has exited. Failures that arrive while
// the channel is full are logged and dropped.
func (q *Queue) Failures() <-chan Failure {
	return q.failures
}

// Close stops accepting tasks, runs what is already queued and waits for
// the workers to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	close(q.failures)
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for j := range q.jobs {
		if err := q.run(j); err != nil {
			slog.Error("background task failed", "task", j.name, "worker", id, "error", err)
			select {
			case q.failures <- Failure{Name: j.name, Err: err}:
			default:
				slog.Warn("failure channel full, dropping report", "task", j.name)
			}
		}
	}
}

func (q *Queue) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return j.fn(q.ctx)
}
