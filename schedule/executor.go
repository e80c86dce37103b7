// Package schedule provides a bounded worker pool for one-shot and
// recurring tasks, the Go analog of a fixed-size scheduled thread
// pool: at most Config.CorePoolSize task bodies run concurrently, and
// successive runs of a given recurring task never overlap.
package schedule

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/corevane/resilicore/corefault"
	"github.com/corevane/resilicore/propagation"
)

// workerNameKey is the context key under which the executing worker's
// name is stashed, so observability code downstream of a task body can
// tag its logs/spans with the concrete worker that ran it.
type workerNameKey struct{}

// WorkerName returns the name of the worker goroutine executing ctx's
// task, if ctx was produced by an Executor.
func WorkerName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(workerNameKey{}).(string)
	return name, ok
}

// Config configures an Executor.
type Config struct {
	// CorePoolSize is the number of worker goroutines kept running.
	// Must be at least 1.
	CorePoolSize int

	// ThreadNamePrefix names worker goroutines {prefix}-1, {prefix}-2,
	// .... Defaults to "resilicore-scheduler".
	ThreadNamePrefix string

	// Propagators run in addition to the built-in correlation
	// propagator on every submitted task.
	Propagators []propagation.Propagator
}

// Executor runs scheduled tasks on a fixed-size worker pool ordered by
// a priority queue of pending runs.
type Executor struct {
	mu    sync.Mutex
	queue runQueue
	seq   int64

	wake   chan struct{}
	workCh chan *scheduledRun
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup

	names       *namingFactory
	propagators []propagation.Propagator
}

// New creates an Executor with cfg.CorePoolSize persistent workers.
func New(cfg Config) (*Executor, error) {
	if cfg.CorePoolSize < 1 {
		return nil, corefault.New(corefault.Validation, "schedule.New", "CorePoolSize must be at least 1")
	}

	prefix := cfg.ThreadNamePrefix
	if prefix == "" {
		prefix = "resilicore-scheduler"
	}

	e := &Executor{
		wake:        make(chan struct{}, 1),
		workCh:      make(chan *scheduledRun),
		done:        make(chan struct{}),
		names:       newNamingFactory(prefix),
		propagators: cfg.Propagators,
	}

	for i := 0; i < cfg.CorePoolSize; i++ {
		name := e.names.newName()
		e.wg.Add(1)
		go e.worker(name)
	}
	e.wg.Add(1)
	go e.dispatch()

	return e, nil
}

// allPropagators is the built-in correlation propagator followed by
// any caller-configured ones, per the submission contract every
// Schedule* method applies.
func (e *Executor) allPropagators() []propagation.Propagator {
	return append([]propagation.Propagator{propagation.CorrelationPropagator{}}, e.propagators...)
}

func (e *Executor) decorate(ctx context.Context, task func(context.Context) error) func(context.Context) error {
	return propagation.DecorateFunc(ctx, e.allPropagators(), task)
}

// Schedule runs task once after delay.
func (e *Executor) Schedule(ctx context.Context, task func(context.Context) error, delay time.Duration) (Handle, error) {
	return e.submit(ctx, task, delay, once, 0)
}

// ScheduleAtFixedRate runs task every period, starting after
// initialDelay. The next run is scheduled at
// previous_scheduled_start + period; an overrunning execution shifts
// subsequent starts but never overlaps with the run still in flight.
func (e *Executor) ScheduleAtFixedRate(ctx context.Context, task func(context.Context) error, initialDelay, period time.Duration) (Handle, error) {
	if period <= 0 {
		return Handle{}, corefault.New(corefault.Validation, "schedule.Executor.ScheduleAtFixedRate", "period must be positive")
	}
	return e.submit(ctx, task, initialDelay, fixedRate, period)
}

// ScheduleWithFixedDelay runs task repeatedly, waiting delay after each
// run's completion before scheduling the next.
func (e *Executor) ScheduleWithFixedDelay(ctx context.Context, task func(context.Context) error, initialDelay, delay time.Duration) (Handle, error) {
	if delay <= 0 {
		return Handle{}, corefault.New(corefault.Validation, "schedule.Executor.ScheduleWithFixedDelay", "delay must be positive")
	}
	return e.submit(ctx, task, initialDelay, fixedDelay, delay)
}

func (e *Executor) submit(ctx context.Context, task func(context.Context) error, delay time.Duration, kind recurrenceKind, period time.Duration) (Handle, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return Handle{}, corefault.New(corefault.Validation, "schedule.Executor.submit", "executor is shut down")
	}

	handle := &taskHandle{}
	run := &scheduledRun{
		runAt:  time.Now().Add(delay),
		seq:    e.seq,
		exec:   e.decorate(ctx, task),
		handle: handle,
		kind:   kind,
		period: period,
	}
	e.seq++
	heap.Push(&e.queue, run)
	e.mu.Unlock()

	e.signalWake()
	return Handle{inner: handle}, nil
}

func (e *Executor) signalWake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// dispatch pulls due runs off the queue and hands them to a worker,
// sleeping until the next run is due or a new submission arrives. Once
// shut down it hands off every run that is already due, drops every
// run that is not yet due (nothing waits for those), then closes
// workCh so workers drain their in-flight run and exit.
func (e *Executor) dispatch() {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			closed := e.closed
			e.mu.Unlock()
			if closed {
				close(e.workCh)
				return
			}
			select {
			case <-e.wake:
			case <-e.done:
			}
			continue
		}

		next := e.queue[0]
		wait := time.Until(next.runAt)
		if wait > 0 {
			closed := e.closed
			e.mu.Unlock()
			if closed {
				e.mu.Lock()
				e.queue = e.queue[:0]
				e.mu.Unlock()
				close(e.workCh)
				return
			}
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-e.wake:
				timer.Stop()
			case <-e.done:
				timer.Stop()
			}
			continue
		}

		run := heap.Pop(&e.queue).(*scheduledRun)
		e.mu.Unlock()

		if run.handle.cancelled.Load() {
			continue
		}

		e.workCh <- run
	}
}

// worker runs due tasks handed off by dispatch until workCh is closed,
// which happens only after Shutdown has handed off every already-due
// run — so a worker always finishes an in-flight run before exiting.
func (e *Executor) worker(name string) {
	defer e.wg.Done()
	for run := range e.workCh {
		e.runOnce(name, run)
	}
}

func (e *Executor) runOnce(workerName string, run *scheduledRun) {
	started := run.runAt
	ctx := context.WithValue(context.Background(), workerNameKey{}, workerName)
	_ = run.exec(ctx)

	if run.handle.cancelled.Load() {
		return
	}

	var nextAt time.Time
	switch run.kind {
	case fixedRate:
		nextAt = started.Add(run.period)
		if nextAt.Before(time.Now()) {
			nextAt = time.Now()
		}
	case fixedDelay:
		nextAt = time.Now().Add(run.period)
	default:
		return
	}

	e.mu.Lock()
	if !e.closed {
		run.runAt = nextAt
		heap.Push(&e.queue, run)
	}
	e.mu.Unlock()
	e.signalWake()
}

// Shutdown stops accepting new submissions, lets in-flight and already
// queued-but-due work finish, and waits for every worker goroutine to
// exit or ctx to be done.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	close(e.done)
	e.signalWake()

	waited := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
