package queue

import "time"

// Result is the outcome of one worker invocation. Err is nil on success.
type Result[R any] struct {
	Value   R
	Err     error
	Elapsed time.Duration
}

// OK reports whether the invocation succeeded.
func (r Result[R]) OK() bool {
	return r.Err == nil
}

// Observer receives lifecycle notifications from a BoundedQueue.
//
// Item callbacks are called on the item's own goroutine: ItemStarted before the
// worker runs, then ItemSucceeded or ItemFailed, then ItemSettled. ItemStarted
// calls are delivered in the order items left the backlog.
// Drained is called once each time the queue goes from having work to having
// none, after the queue lock is released. Drained calls are not serialized:
// if new work arrives and drains while an earlier Drained is still running,
// the calls overlap, and a Drained that itself makes the queue busy and then
// idle again sees the nested call before it returns.
// Observers may call back into the queue but must not panic.
type Observer[T, R any] interface {
	ItemStarted(item T)
	ItemSucceeded(item T, value R)
	ItemFailed(item T, err *WorkerError[T])
	ItemSettled(item T, result Result[R])
	Drained()
}

// ObserverFuncs adapts optional callback functions to the Observer interface.
// Nil fields are skipped.
type ObserverFuncs[T, R any] struct {
	OnItemStart   func(item T)
	OnItemSuccess func(item T, value R)
	OnItemError   func(item T, err *WorkerError[T])
	OnItemDone    func(item T, result Result[R])
	OnDrain       func()
}

var _ Observer[int, int] = ObserverFuncs[int, int]{}

// ItemStarted calls OnItemStart.
func (f ObserverFuncs[T, R]) ItemStarted(item T) {
	if f.OnItemStart != nil {
		f.OnItemStart(item)
	}
}

// ItemSucceeded calls OnItemSuccess.
func (f ObserverFuncs[T, R]) ItemSucceeded(item T, value R) {
	if f.OnItemSuccess != nil {
		f.OnItemSuccess(item, value)
	}
}

// ItemFailed calls OnItemError.
func (f ObserverFuncs[T, R]) ItemFailed(item T, err *WorkerError[T]) {
	if f.OnItemError != nil {
		f.OnItemError(item, err)
	}
}

// ItemSettled calls OnItemDone.
func (f ObserverFuncs[T, R]) ItemSettled(item T, result Result[R]) {
	if f.OnItemDone != nil {
		f.OnItemDone(item, result)
	}
}

// Drained calls OnDrain.
func (f ObserverFuncs[T, R]) Drained() {
	if f.OnDrain != nil {
		f.OnDrain()
	}
}

// Observers fans every notification out to each member in order.
type Observers[T, R any] []Observer[T, R]

var _ Observer[int, int] = Observers[int, int]{}

// ItemStarted notifies every member.
func (obs Observers[T, R]) ItemStarted(item T) {
	for _, o := range obs {
		o.ItemStarted(item)
	}
}

// ItemSucceeded notifies every member.
func (obs Observers[T, R]) ItemSucceeded(item T, value R) {
	for _, o := range obs {
		o.ItemSucceeded(item, value)
	}
}

// ItemFailed notifies every member.
func (obs Observers[T, R]) ItemFailed(item T, err *WorkerError[T]) {
	for _, o := range obs {
		o.ItemFailed(item, err)
	}
}

// ItemSettled notifies every member.
func (obs Observers[T, R]) ItemSettled(item T, result Result[R]) {
	for _, o := range obs {
		o.ItemSettled(item, result)
	}
}

// Drained notifies every member.
func (obs Observers[T, R]) Drained() {
	for _, o := range obs {
		o.Drained()
	}
}
