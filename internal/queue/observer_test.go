package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserverFuncs_NilHooks(t *testing.T) {
	var f ObserverFuncs[string, int]

	assert.NotPanics(t, func() {
		f.ItemStarted("a")
		f.ItemSucceeded("a", 1)
		f.ItemFailed("a", &WorkerError[string]{Item: "a", Err: errors.New("x")})
		f.ItemSettled("a", Result[int]{Value: 1})
		f.Drained()
	})
}

func TestObserverFuncs_Dispatch(t *testing.T) {
	var calls []string
	werr := &WorkerError[string]{Item: "b", Err: errors.New("bad")}

	f := ObserverFuncs[string, int]{
		OnItemStart:   func(item string) { calls = append(calls, "start:"+item) },
		OnItemSuccess: func(item string, _ int) { calls = append(calls, "success:"+item) },
		OnItemError: func(item string, err *WorkerError[string]) {
			assert.Same(t, werr, err)
			calls = append(calls, "error:"+item)
		},
		OnItemDone: func(item string, _ Result[int]) { calls = append(calls, "done:"+item) },
		OnDrain:    func() { calls = append(calls, "drain") },
	}

	f.ItemStarted("a")
	f.ItemSucceeded("a", 1)
	f.ItemFailed("b", werr)
	f.ItemSettled("b", Result[int]{Err: werr})
	f.Drained()

	assert.Equal(t, []string{"start:a", "success:a", "error:b", "done:b", "drain"}, calls)
}

func TestObservers_FanOutInOrder(t *testing.T) {
	var calls []string
	member := func(name string) Observer[string, int] {
		return ObserverFuncs[string, int]{
			OnItemStart: func(string) { calls = append(calls, name+":start") },
			OnItemDone:  func(string, Result[int]) { calls = append(calls, name+":done") },
			OnDrain:     func() { calls = append(calls, name+":drain") },
		}
	}

	obs := Observers[string, int]{member("first"), member("second")}
	obs.ItemStarted("x")
	obs.ItemSucceeded("x", 3)
	obs.ItemSettled("x", Result[int]{Value: 3})
	obs.Drained()

	assert.Equal(t, []string{
		"first:start", "second:start",
		"first:done", "second:done",
		"first:drain", "second:drain",
	}, calls)
}

func TestResult_OK(t *testing.T) {
	assert.True(t, Result[int]{Value: 1, Elapsed: time.Millisecond}.OK())
	assert.False(t, Result[int]{Err: errors.New("boom")}.OK())
}

func TestWorkerError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &WorkerError[int]{Item: 7, Err: cause}

	assert.Equal(t, "queue: worker failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	perr := newPanicError("oops")
	assert.Equal(t, "panic: oops", perr.Error())
	assert.Contains(t, perr.Stack, "goroutine")
}
