package lambda

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"server-utilities/internal/config"
	"server-utilities/internal/logging"
	"server-utilities/pkg/future"
)

// Runtime holds the event loop and background service shared by invocations
// of a warm Lambda container
type Runtime struct {
	loop       *future.EventLoop
	background *future.BackgroundService
	logger     *logrus.Logger
	config     *config.Config
	lastUsed   time.Time
	mu         sync.RWMutex
}

var (
	globalRuntime *Runtime
	runtimeOnce   sync.Once
)

// GetRuntime returns the global runtime instance
func GetRuntime() *Runtime {
	runtimeOnce.Do(func() {
		globalRuntime = &Runtime{}
	})
	return globalRuntime
}

// Initialize starts the event loop and background service. Calling it on an
// initialized runtime is a no-op.
func (r *Runtime) Initialize(cfg *config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop != nil {
		return nil
	}

	r.config = cfg
	r.logger = logging.New(cfg.Log)
	SetLogger(r.logger)

	r.loop = future.NewEventLoop(cfg.Background.LoopName, r.logger)
	r.background = future.NewBackgroundService(future.BackgroundConfig{
		Label:       cfg.Background.Label,
		WorkerLimit: cfg.Background.WorkerLimit,
	}, r.logger)
	r.lastUsed = time.Now()

	serverless := config.GetServerlessConfig()
	r.logger.WithFields(logrus.Fields{
		"loop":       cfg.Background.LoopName,
		"background": r.background.Label(),
		"mode":       config.GetDeploymentMode(),
		"function":   serverless.FunctionName,
		"region":     serverless.Region,
	}).Info("Runtime initialized")
	return nil
}

// Get returns the loop and background service, initializing from the
// environment if necessary
func (r *Runtime) Get(ctx context.Context) (*future.EventLoop, *future.BackgroundService, error) {
	r.mu.Lock()
	if r.loop != nil {
		r.lastUsed = time.Now()
		loop, background := r.loop, r.background
		r.mu.Unlock()
		return loop, background, nil
	}
	r.mu.Unlock()

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := r.Initialize(cfg); err != nil {
		return nil, nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loop, r.background, nil
}

// Config returns the configuration the runtime was initialized with, or nil
// before Initialize
func (r *Runtime) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// Logger returns the runtime logger, or a default logger before Initialize
func (r *Runtime) Logger() *logrus.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.logger == nil {
		return logrus.StandardLogger()
	}
	return r.logger
}

// IsHealthy checks if the runtime is initialized and was used recently
func (r *Runtime) IsHealthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.loop == nil {
		return false
	}

	// Check if the runtime is stale (older than 5 minutes)
	return time.Since(r.lastUsed) < 5*time.Minute
}

// Cleanup drains the background service and stops the loop. The runtime is
// reset even when draining fails, so the next Get starts a fresh one.
func (r *Runtime) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop == nil {
		return nil
	}

	loop, background := r.loop, r.background
	r.loop = nil
	r.background = nil

	if err := background.Close(ctx); err != nil {
		// Work still in flight may complete onto the loop, so leave it running.
		r.logger.WithError(err).Warn("Background work did not drain before cleanup deadline")
		return err
	}
	return loop.Close()
}

// UpdateLastUsed updates the last used timestamp
func (r *Runtime) UpdateLastUsed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastUsed = time.Now()
}
