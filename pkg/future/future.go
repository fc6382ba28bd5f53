package future

import (
	"sync"
)

type state int

const (
	statePending state = iota
	stateSucceeded
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Future is a write-once result cell owned by an event loop. Callbacks
// attached to it always run on that loop.
type Future[T any] struct {
	loop *EventLoop

	mu        sync.Mutex
	state     state
	value     T
	err       error
	callbacks []func(T, error)
	done      chan struct{}
}

// Promise is the write side of a Future
type Promise[T any] struct {
	future *Future[T]
}

// NewPromise creates a pending promise whose future belongs to loop
func NewPromise[T any](loop *EventLoop) *Promise[T] {
	return &Promise[T]{
		future: &Future[T]{
			loop: loop,
			done: make(chan struct{}),
		},
	}
}

// Future returns the read side of the promise
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

// Succeed completes the promise with a value. It reports whether this call
// performed the completion; later calls are no-ops and return false.
func (p *Promise[T]) Succeed(value T) bool {
	return p.future.complete(value, nil)
}

// Fail completes the promise with an error. A nil error is replaced by
// ErrNilFailure so the failed state always carries a reason.
func (p *Promise[T]) Fail(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}
	var zero T
	return p.future.complete(zero, err)
}

// Complete completes the promise with value when err is nil, otherwise with err
func (p *Promise[T]) Complete(value T, err error) bool {
	if err != nil {
		return p.Fail(err)
	}
	return p.Succeed(value)
}

// Succeeded returns a future already completed with value
func Succeeded[T any](loop *EventLoop, value T) *Future[T] {
	p := NewPromise[T](loop)
	p.Succeed(value)
	return p.Future()
}

// Failed returns a future already failed with err
func Failed[T any](loop *EventLoop, err error) *Future[T] {
	p := NewPromise[T](loop)
	p.Fail(err)
	return p.Future()
}

// EventLoop returns the loop that delivers this future's callbacks
func (f *Future[T]) EventLoop() *EventLoop {
	return f.loop
}

// Done is closed once the future is completed
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome without blocking. ok is false while pending.
func (f *Future[T]) Result() (value T, err error, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == statePending {
		return value, nil, false
	}
	return f.value, f.err, true
}

// OnComplete registers a callback run on the owning loop once the future is
// completed. Callbacks run in registration order.
func (f *Future[T]) OnComplete(callback func(T, error)) {
	f.mu.Lock()
	if f.state == statePending {
		f.callbacks = append(f.callbacks, callback)
		f.mu.Unlock()
		return
	}
	value, err := f.value, f.err
	f.mu.Unlock()

	f.deliver([]func(T, error){callback}, value, err)
}

func (f *Future[T]) complete(value T, err error) bool {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return false
	}

	if err != nil {
		f.state = stateFailed
	} else {
		f.state = stateSucceeded
	}
	f.value = value
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	if len(callbacks) > 0 {
		f.deliver(callbacks, value, err)
	}
	return true
}

func (f *Future[T]) deliver(callbacks []func(T, error), value T, err error) {
	run := func() {
		for _, cb := range callbacks {
			cb(value, err)
		}
	}

	if f.loop == nil {
		run()
		return
	}

	if execErr := f.loop.Execute(run); execErr != nil {
		// A closed loop would strand the observers forever.
		f.loop.logger.WithError(execErr).Warn("Delivering future callbacks outside the event loop")
		run()
	}
}
