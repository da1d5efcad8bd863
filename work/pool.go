// Package work implements the editor's background job pool: a fixed-size
// worker pool with a future-style submission contract, plus an inline mode
// in which every submission executes synchronously in the caller. The
// contract is identical in both modes; only latency and ordering relative
// to the caller differ.
package work

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrNotRunning is returned when submitting to a stopped pool.
	ErrNotRunning = errors.New("work: pool not running")
	// ErrAlreadyRunning is returned by Start on a running pool.
	ErrAlreadyRunning = errors.New("work: pool already running")
	// ErrQueueFull is returned when the submission queue is at capacity.
	ErrQueueFull = errors.New("work: queue full")
	// ErrPanicked is reported by jobs whose function panicked.
	ErrPanicked = errors.New("work: job panicked")
)

// Fn is a unit of background work. It must only read immutable snapshots
// captured at submission time; results reach shared state through the
// editor's message path, never directly.
type Fn func() (any, error)

// Job is the future-style handle returned by Submit.
type Job struct {
	id     string
	done   chan struct{}
	result any
	err    error
}

// ID returns the job's unique identifier.
func (j *Job) ID() string { return j.id }

// Done returns a channel closed when the job completes.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result returns the job's outcome without blocking. The boolean reports
// whether the job has completed.
func (j *Job) Result() (any, error, bool) {
	select {
	case <-j.done:
		return j.result, j.err, true
	default:
		return nil, nil, false
	}
}

// Wait blocks until the job completes or the context is cancelled.
func (j *Job) Wait(ctx context.Context) (any, error) {
	select {
	case <-j.done:
		return j.result, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PanicHandler is invoked with the recovered value and stack when a job
// panics.
type PanicHandler func(recovered any, stack []byte)

// Pool executes submitted jobs on a fixed set of workers, or inline when
// created with WithInline(true).
type Pool struct {
	workers   int
	queueSize int
	inline    bool
	onPanic   PanicHandler

	mu      sync.Mutex
	queue   chan *task
	running atomic.Bool
	wg      sync.WaitGroup

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

type task struct {
	fn  Fn
	job *Job

	// then runs after completion, on the worker (or inline in the caller).
	then func(*Job)
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize sets the submission queue capacity.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithInline makes every submission execute synchronously in the caller.
func WithInline(inline bool) Option {
	return func(p *Pool) {
		p.inline = inline
	}
}

// WithPanicHandler installs a handler for job panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(p *Pool) {
		p.onPanic = h
	}
}

// NewPool creates a pool. Call Start before submitting.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers:   2,
		queueSize: 256,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inline reports whether the pool executes submissions synchronously.
func (p *Pool) Inline() bool { return p.inline }

// Start launches the workers. Inline pools have no workers but still track
// the running state so the submission contract matches.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return ErrAlreadyRunning
	}
	p.running.Store(true)

	if p.inline {
		return nil
	}

	p.queue = make(chan *task, p.queueSize)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return nil
}

// Stop drains the queue and waits for workers, or until the context is
// cancelled.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running.Swap(false) {
		p.mu.Unlock()
		return ErrNotRunning
	}
	if p.inline {
		p.mu.Unlock()
		return nil
	}
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the pool accepts submissions.
func (p *Pool) IsRunning() bool { return p.running.Load() }

// Submit schedules fn and returns its job handle.
func (p *Pool) Submit(fn Fn) (*Job, error) {
	return p.SubmitThen(fn, nil)
}

// SubmitThen schedules fn and runs then with the completed job afterwards.
// In inline mode both run before SubmitThen returns. The then callback runs
// on the worker goroutine; it must only hand the result off (e.g., into a
// channel drained on the editor thread), never touch editor state.
func (p *Pool) SubmitThen(fn Fn, then func(*Job)) (*Job, error) {
	if !p.running.Load() {
		return nil, ErrNotRunning
	}

	job := &Job{id: uuid.NewString(), done: make(chan struct{})}
	t := &task{fn: fn, job: job, then: then}
	p.submitted.Add(1)

	if p.inline {
		p.run(t)
		return job, nil
	}

	select {
	case p.queue <- t:
		return job, nil
	default:
		p.dropped.Add(1)
		return nil, ErrQueueFull
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		p.run(t)
	}
}

func (p *Pool) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			t.job.err = ErrPanicked
			if p.onPanic != nil {
				p.onPanic(r, debug.Stack())
			}
		}
		close(t.job.done)
		p.completed.Add(1)
		if t.then != nil {
			p.runThen(t)
		}
	}()
	t.job.result, t.job.err = t.fn()
}

func (p *Pool) runThen(t *task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			if p.onPanic != nil {
				p.onPanic(r, debug.Stack())
			}
		}
	}()
	t.then(t.job)
}

// Stats reports pool counters.
type Stats struct {
	Submitted uint64
	Completed uint64
	Panicked  uint64
	Dropped   uint64
}

// Stats returns current pool statistics.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
		Dropped:   p.dropped.Load(),
	}
}
