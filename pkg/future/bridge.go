package future

import (
	"context"
	"runtime/debug"
	"sync/atomic"
)

type outcome[T any] struct {
	value T
	err   error
}

// continuation is a single-shot resumption cell. The first resume wins and
// every later one is rejected by the state check.
type continuation[T any] struct {
	resumed atomic.Bool
	ch      chan outcome[T]
}

func newContinuation[T any]() *continuation[T] {
	return &continuation[T]{ch: make(chan outcome[T], 1)}
}

func (c *continuation[T]) resume(value T, err error) bool {
	if !c.resumed.CompareAndSwap(false, true) {
		return false
	}
	c.ch <- outcome[T]{value: value, err: err}
	return true
}

// Await blocks the calling goroutine until f completes and returns its value
// or its failure verbatim. Cancelling ctx stops the wait; the future itself
// is left alone. It must not be called from a task on the future's own loop:
// that blocks the goroutine which delivers the completion.
func Await[T any](ctx context.Context, f *Future[T]) (T, error) {
	c := newContinuation[T]()
	f.OnComplete(func(value T, err error) {
		c.resume(value, err)
	})

	select {
	case out := <-c.ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Async runs fn on its own goroutine and returns a future, owned by loop,
// that completes with fn's outcome. A panic in fn becomes a *WorkPanicError.
func Async[T any](ctx context.Context, loop *EventLoop, fn func(ctx context.Context) (T, error)) *Future[T] {
	p := NewPromise[T](loop)
	go func() {
		value, err := capture("", func() (T, error) { return fn(ctx) })
		completeOnLoop(p, value, err)
	}()
	return p.Future()
}

// capture runs work and turns a panic into an error
func capture[T any](label string, work func() (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkPanicError{Label: label, Value: r, Stack: debug.Stack()}
		}
	}()
	return work()
}

// completeOnLoop marshals the completion onto the promise's loop so that it
// is ordered with the loop's other tasks.
func completeOnLoop[T any](p *Promise[T], value T, err error) {
	loop := p.future.loop
	if loop == nil {
		p.Complete(value, err)
		return
	}
	if execErr := loop.Execute(func() { p.Complete(value, err) }); execErr != nil {
		p.Complete(value, err)
	}
}
