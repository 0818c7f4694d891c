package queue

import (
	"fmt"
	"runtime"
)

// WorkerError reports a failed worker invocation. It carries the item the
// worker was called with and the error the worker returned (or a
// *PanicError if the worker panicked).
type WorkerError[T any] struct {
	Item T
	Err  error
}

func (e *WorkerError[T]) Error() string {
	return fmt.Sprintf("queue: worker failed: %v", e.Err)
}

func (e *WorkerError[T]) Unwrap() error { return e.Err }

// PanicError wraps a value recovered from a panicking worker together with
// the goroutine stack at the point of the panic.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
