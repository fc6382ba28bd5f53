package future

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// BackgroundConfig configures a BackgroundService
type BackgroundConfig struct {
	// Label names the service in logs and panic errors
	Label string `json:"label" yaml:"label"`
	// WorkerLimit caps concurrently running work; 0 means unbounded
	WorkerLimit int `json:"worker_limit" yaml:"worker_limit"`
}

// BackgroundService runs blocking work off the event loop and reports the
// outcome through futures owned by the caller's loop.
type BackgroundService struct {
	label  string
	logger *logrus.Entry
	sem    *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewBackgroundService creates a new background service
func NewBackgroundService(cfg BackgroundConfig, logger *logrus.Logger) *BackgroundService {
	if logger == nil {
		logger = logrus.New()
	}

	label := cfg.Label
	if label == "" {
		label = "background-" + uuid.New().String()
	}

	s := &BackgroundService{
		label:  label,
		logger: logger.WithField("service", label),
	}
	if cfg.WorkerLimit > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.WorkerLimit))
	}
	return s
}

// Label returns the service label
func (s *BackgroundService) Label() string {
	return s.label
}

// Submit runs work on a background goroutine and returns a future owned by
// loop. work never runs on the loop; its result or error is delivered back to
// the loop exactly once.
func Submit[T any](s *BackgroundService, loop *EventLoop, work func() (T, error)) *Future[T] {
	p := NewPromise[T](loop)

	if !s.begin() {
		p.Fail(ErrServiceClosed)
		return p.Future()
	}

	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			// Acquire with a background context cannot fail.
			_ = s.sem.Acquire(context.Background(), 1)
			defer s.sem.Release(1)
		}

		value, err := capture(s.label, work)
		if err != nil {
			s.logger.WithError(err).Debug("Background work failed")
		}
		completeOnLoop(p, value, err)
	}()

	return p.Future()
}

// SubmitValue is Submit for work that cannot fail
func SubmitValue[T any](s *BackgroundService, loop *EventLoop, work func() T) *Future[T] {
	return Submit(s, loop, func() (T, error) {
		return work(), nil
	})
}

// SubmitInline runs work in the background and completes with passThrough
// once it returns.
func SubmitInline[T any](s *BackgroundService, loop *EventLoop, passThrough T, work func()) *Future[T] {
	return Submit(s, loop, func() (T, error) {
		work()
		return passThrough, nil
	})
}

// Close rejects new work and waits for in-flight work to finish or ctx to end
func (s *BackgroundService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Debug("Background service drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *BackgroundService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

var (
	defaultService     *BackgroundService
	defaultServiceOnce sync.Once
)

// DefaultBackgroundService returns the shared, unbounded background service
func DefaultBackgroundService() *BackgroundService {
	defaultServiceOnce.Do(func() {
		defaultService = NewBackgroundService(BackgroundConfig{Label: "global"}, nil)
	})
	return defaultService
}

// Background runs work on the shared background service
func Background[T any](loop *EventLoop, work func() T) *Future[T] {
	return SubmitValue(DefaultBackgroundService(), loop, work)
}
