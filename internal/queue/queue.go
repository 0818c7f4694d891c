package queue

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Worker performs the work for one item. It may block; the queue runs each
// invocation on its own goroutine.
type Worker[T, R any] func(ctx context.Context, item T) (R, error)

// Stats is a point-in-time snapshot of a queue. Started, Succeeded and Failed
// are cumulative over the queue's lifetime.
type Stats struct {
	Pending     int    `json:"pending"`
	Active      int    `json:"active"`
	Concurrency int    `json:"concurrency"`
	Paused      bool   `json:"paused"`
	Started     uint64 `json:"started"`
	Succeeded   uint64 `json:"succeeded"`
	Failed      uint64 `json:"failed"`
}

// BoundedQueue runs a Worker over a FIFO backlog of items with at most
// Concurrency items in flight at once.
//
// All methods are safe for concurrent use.
type BoundedQueue[T, R any] struct {
	ctx         context.Context
	worker      Worker[T, R]
	concurrency int
	autoStart   bool
	observer    Observer[T, R]
	logger      *slog.Logger

	// mu guards every field below it. Admission decisions (the pump) and slot
	// release are made while holding it.
	mu      sync.Mutex
	backlog []T
	active  int
	paused  bool
	// busy is set when the queue receives work and cleared when the drain for
	// that work is reported. It makes drain fire once per idle transition.
	busy bool
	// idle is closed while the queue is drained and replaced when it becomes
	// busy again.
	idle chan struct{}
	// lastStart is closed once the most recently admitted item has been
	// reported to ItemStarted. Each admission waits on its predecessor so that
	// start notifications follow backlog order.
	lastStart chan struct{}

	started   atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
}

// New creates a queue that calls worker for every enqueued item. The ctx is
// passed to each worker invocation; the queue never cancels it. A nil observer
// discards notifications and a nil logger uses slog.Default().
func New[T, R any](
	ctx context.Context,
	worker Worker[T, R],
	cfg Config,
	observer Observer[T, R],
	logger *slog.Logger,
) *BoundedQueue[T, R] {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = ObserverFuncs[T, R]{}
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
		logger.Warn("invalid queue concurrency specified, using default",
			"specified_concurrency", cfg.Concurrency,
			"default_concurrency", 1)
	}

	idle := make(chan struct{})
	close(idle)

	return &BoundedQueue[T, R]{
		ctx:         ctx,
		worker:      worker,
		concurrency: concurrency,
		autoStart:   cfg.AutoStart,
		observer:    observer,
		logger:      logger,
		idle:        idle,
		lastStart:   idle,
	}
}

// admission is an item taken off the backlog, together with the start
// notification it must wait for and the one it must signal.
type admission[T any] struct {
	item  T
	after <-chan struct{}
	done  chan struct{}
}

// Enqueue appends item to the backlog and, if auto-start is enabled, runs a
// scheduling pass.
func (q *BoundedQueue[T, R]) Enqueue(item T) {
	q.mu.Lock()
	q.backlog = append(q.backlog, item)
	q.markBusyLocked()
	q.mu.Unlock()

	if q.autoStart {
		q.pump()
	}
}

// EnqueueMany appends items in order and, if auto-start is enabled, runs a
// single scheduling pass for the whole batch.
func (q *BoundedQueue[T, R]) EnqueueMany(items ...T) {
	q.mu.Lock()
	if len(items) > 0 {
		q.backlog = append(q.backlog, items...)
		q.markBusyLocked()
	}
	q.mu.Unlock()

	if q.autoStart {
		q.pump()
	}
}

// Start runs one scheduling pass. It is how a queue built without auto-start
// begins work. On a paused queue it only performs the idle check.
func (q *BoundedQueue[T, R]) Start() {
	q.pump()
}

// Pause stops new items from starting. Items already in flight run to
// completion.
func (q *BoundedQueue[T, R]) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()

	q.logger.Debug("queue paused")
}

// Resume lifts a pause and runs a scheduling pass. It does nothing if the
// queue is not paused.
func (q *BoundedQueue[T, R]) Resume() {
	q.mu.Lock()
	if !q.paused {
		q.mu.Unlock()
		return
	}
	q.paused = false
	q.mu.Unlock()

	q.logger.Debug("queue resumed")
	q.pump()
}

// Clear discards every pending item and returns them in backlog order. Items
// in flight are not affected, and no drain check is made.
func (q *BoundedQueue[T, R]) Clear() []T {
	q.mu.Lock()
	dropped := q.backlog
	q.backlog = nil
	q.mu.Unlock()

	if len(dropped) > 0 {
		q.logger.Debug("queue cleared", "discarded", len(dropped))
	}
	return dropped
}

// Size returns the number of pending items, excluding items in flight.
func (q *BoundedQueue[T, R]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// Active returns the number of items in flight.
func (q *BoundedQueue[T, R]) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// IsIdle reports whether the backlog is empty and no item is in flight.
func (q *BoundedQueue[T, R]) IsIdle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.isIdleLocked()
}

// Paused reports whether the queue is paused.
func (q *BoundedQueue[T, R]) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Concurrency returns the effective concurrency limit.
func (q *BoundedQueue[T, R]) Concurrency() int {
	return q.concurrency
}

// Stats returns a snapshot of the queue's state and cumulative counters.
func (q *BoundedQueue[T, R]) Stats() Stats {
	q.mu.Lock()
	s := Stats{
		Pending:     len(q.backlog),
		Active:      q.active,
		Concurrency: q.concurrency,
		Paused:      q.paused,
	}
	q.mu.Unlock()

	s.Started = q.started.Load()
	s.Succeeded = q.succeeded.Load()
	s.Failed = q.failed.Load()
	return s
}

// Wait blocks until the queue reports drain or ctx is done. It returns
// immediately if no work has arrived since the last drain. Observers have
// already received Drained when Wait returns nil.
func (q *BoundedQueue[T, R]) Wait(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *BoundedQueue[T, R]) isIdleLocked() bool {
	return len(q.backlog) == 0 && q.active == 0
}

func (q *BoundedQueue[T, R]) markBusyLocked() {
	if !q.busy {
		q.busy = true
		q.idle = make(chan struct{})
	}
}

// pump admits items from the backlog while slots are free and the queue is
// not paused, then reports drain if the queue has become idle. The idle check
// runs even when paused.
func (q *BoundedQueue[T, R]) pump() {
	q.mu.Lock()
	var admitted []admission[T]
	if !q.paused {
		for q.active < q.concurrency && len(q.backlog) > 0 {
			a := admission[T]{
				item:  q.backlog[0],
				after: q.lastStart,
				done:  make(chan struct{}),
			}
			var zero T
			q.backlog[0] = zero
			q.backlog = q.backlog[1:]
			q.active++
			q.lastStart = a.done
			admitted = append(admitted, a)
		}
	}

	var drained chan struct{}
	if q.busy && q.isIdleLocked() {
		q.busy = false
		drained = q.idle
	}
	q.mu.Unlock()

	for _, a := range admitted {
		go q.run(a)
	}

	if drained != nil {
		q.logger.Debug("queue drained",
			"succeeded", q.succeeded.Load(),
			"failed", q.failed.Load())
		q.observer.Drained()
		close(drained)
	}
}

// run reports the start of one admitted item, executes the worker and reports
// its outcome. The slot is released and the pump re-run whatever the outcome.
func (q *BoundedQueue[T, R]) run(a admission[T]) {
	defer q.release()

	item := a.item
	<-a.after
	q.started.Add(1)
	q.observer.ItemStarted(item)
	close(a.done)

	start := time.Now()
	value, err := q.invoke(item)
	result := Result[R]{Value: value, Elapsed: time.Since(start)}

	if err != nil {
		werr := &WorkerError[T]{Item: item, Err: err}
		result.Err = werr
		q.failed.Add(1)
		q.logger.Debug("queue item failed",
			"error", err,
			"elapsed", result.Elapsed)
		q.observer.ItemFailed(item, werr)
	} else {
		q.succeeded.Add(1)
		q.observer.ItemSucceeded(item, value)
	}

	q.observer.ItemSettled(item, result)
}

// invoke calls the worker, converting a panic into a *PanicError.
func (q *BoundedQueue[T, R]) invoke(item T) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return q.worker(q.ctx, item)
}

func (q *BoundedQueue[T, R]) release() {
	q.mu.Lock()
	q.active--
	q.mu.Unlock()

	q.pump()
}
