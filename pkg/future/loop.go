package future

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrLoopClosed is returned when a task is submitted to a closed event loop
var ErrLoopClosed = errors.New("event loop closed")

// EventLoop runs tasks one at a time, in submission order, on a single goroutine
type EventLoop struct {
	name   string
	logger *logrus.Entry

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewEventLoop creates and starts a new event loop
func NewEventLoop(name string, logger *logrus.Logger) *EventLoop {
	if logger == nil {
		logger = logrus.New()
	}

	l := &EventLoop{
		name:   name,
		logger: logger.WithField("event_loop", name),
		done:   make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)

	go l.run()
	return l
}

// Name returns the loop name
func (l *EventLoop) Name() string {
	return l.name
}

// Execute queues a task on the loop. It never blocks on the task itself.
func (l *EventLoop) Execute(task func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("%s: %w", l.name, ErrLoopClosed)
	}

	l.queue = append(l.queue, task)
	l.cond.Signal()
	return nil
}

// Close stops accepting tasks, runs whatever is already queued and waits for
// the loop goroutine to exit. It must not be called from a task on this loop.
func (l *EventLoop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return nil
	}
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()

	<-l.done
	l.logger.Debug("Event loop stopped")
	return nil
}

// Done is closed once the loop goroutine has exited
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

func (l *EventLoop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.runTask(task)
	}
}

// runTask keeps a panicking task from taking the loop down with it
func (l *EventLoop) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Event loop task panicked")
		}
	}()
	task()
}
