// Package queue runs GPU submissions for one queue in order, honoring fence
// waits before and fence signals after each submission.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ral/fence"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("queue: executor closed")

// Submission is one unit of queue work.
//
// Waits block the queue, not the submitter, until every target is reached.
// Signals are applied only after Work returns nil. A failed submission
// applies none of its signals, so queues waiting on them stay blocked.
type Submission struct {
	Waits   []fence.Target
	Work    func() error
	Signals []fence.Target
}

// Ticket tracks a submission until it retires.
type Ticket struct {
	done chan struct{}
	err  error
}

// Wait blocks until the submission has retired and returns its error.
func (t *Ticket) Wait() error {
	<-t.done
	return t.err
}

// Done is closed when the submission has retired.
func (t *Ticket) Done() <-chan struct{} { return t.done }

type job struct {
	sub    Submission
	ticket *Ticket
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor logger. Nil keeps it silent.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithDepth sets how many submissions may be queued before Submit blocks.
func WithDepth(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.depth = n
		}
	}
}

// Executor is a single queue with one worker goroutine.
//
// Thread safety: Executor is safe for concurrent use. Submissions from
// different goroutines are ordered by arrival.
type Executor struct {
	id   fence.QueueID
	name string

	depth int
	jobs  chan job

	// done signals the worker to drain and stop.
	done chan struct{}
	wg   sync.WaitGroup

	// mu orders enqueueing against Close; running only changes under the
	// write lock.
	mu sync.RWMutex

	// running indicates whether the executor is accepting work.
	running atomic.Bool

	submitted atomic.Uint64
	retired   atomic.Uint64

	log *slog.Logger
}

// New starts an executor for queue id.
func New(id fence.QueueID, name string, opts ...Option) *Executor {
	e := &Executor{
		id:    id,
		name:  name,
		depth: 64,
		done:  make(chan struct{}),
		log:   slog.New(discard{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.jobs = make(chan job, e.depth)
	e.running.Store(true)

	e.wg.Add(1)
	go e.worker()
	return e
}

// ID returns the queue id fences are shared with.
func (e *Executor) ID() fence.QueueID { return e.id }

// Name returns the queue name.
func (e *Executor) Name() string { return e.name }

// Submit enqueues s. Every signal target must be owned by this queue and no
// target fence may be nil. A submission accepted before Close always runs.
func (e *Executor) Submit(s Submission) (*Ticket, error) {
	for _, w := range s.Waits {
		if w.Fence == nil {
			return nil, fmt.Errorf("queue %s: nil wait fence", e.name)
		}
	}
	for _, sig := range s.Signals {
		if sig.Fence == nil {
			return nil, fmt.Errorf("queue %s: nil signal fence", e.name)
		}
		if !sig.Fence.Owns(e.id) {
			return nil, fmt.Errorf("queue %s: signal fence %d: %w", e.name, sig.Fence.ID(), fence.ErrNotOwner)
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.running.Load() {
		return nil, ErrClosed
	}
	t := &Ticket{done: make(chan struct{})}
	e.jobs <- job{sub: s, ticket: t}
	e.submitted.Add(1)
	return t, nil
}

// SubmitAndWait submits s and waits for it to retire or ctx to end.
func (e *Executor) SubmitAndWait(ctx context.Context, s Submission) error {
	t, err := e.Submit(s)
	if err != nil {
		return err
	}
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Executor) worker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			e.drain()
			return
		case j := <-e.jobs:
			e.run(j)
		}
	}
}

// drain runs everything still queued.
func (e *Executor) drain() {
	for {
		select {
		case j := <-e.jobs:
			e.run(j)
		default:
			return
		}
	}
}

func (e *Executor) run(j job) {
	defer func() {
		e.retired.Add(1)
		close(j.ticket.done)
	}()
	j.ticket.err = e.execute(j.sub)
}

func (e *Executor) execute(s Submission) error {
	for _, w := range s.Waits {
		if _, err := w.Fence.Wait(w.Value, fence.Infinite); err != nil {
			e.log.Error("queue: wait failed",
				"queue", e.name,
				"fence", w.Fence.ID(),
				"value", w.Value,
				"err", err)
			return fmt.Errorf("queue %s: wait fence %d for %d: %w", e.name, w.Fence.ID(), w.Value, err)
		}
	}

	if s.Work != nil {
		if err := s.Work(); err != nil {
			e.log.Warn("queue: submission failed, signals skipped",
				"queue", e.name,
				"signals", len(s.Signals),
				"err", err)
			return fmt.Errorf("queue %s: %w", e.name, err)
		}
	}

	var errs []error
	for _, sig := range s.Signals {
		if err := sig.Fence.Signal(sig.Value); err != nil {
			e.log.Error("queue: signal failed",
				"queue", e.name,
				"fence", sig.Fence.ID(),
				"value", sig.Value,
				"err", err)
			errs = append(errs, fmt.Errorf("queue %s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close stops accepting work, runs everything already queued and stops the
// worker. A queued wait on a fence nobody signals blocks Close.
// Close is safe to call multiple times.
func (e *Executor) Close() {
	e.mu.Lock()
	if !e.running.CompareAndSwap(true, false) {
		e.mu.Unlock()
		return
	}
	close(e.done)
	e.mu.Unlock()

	e.wg.Wait()
	e.log.Debug("queue: closed",
		"queue", e.name,
		"retired", e.retired.Load())
}

// IsRunning reports whether the executor accepts work.
func (e *Executor) IsRunning() bool { return e.running.Load() }

// Pending returns the number of submissions not yet retired.
func (e *Executor) Pending() int {
	return int(e.submitted.Load() - e.retired.Load())
}

// Retired returns the number of retired submissions.
func (e *Executor) Retired() uint64 { return e.retired.Load() }
