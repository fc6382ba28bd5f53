package lambda

import (
	"context"
	"errors"
	"time"
	"testing"

	"server-utilities/internal/config"
	"server-utilities/pkg/future"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: "error", Format: "text"},
		Background: config.BackgroundConfig{
			Label:       "runtime-test",
			WorkerLimit: 2,
			LoopName:    "runtime-loop",
		},
	}
}

func TestRuntimeLifecycle(t *testing.T) {
	rt := &Runtime{}
	ctx := context.Background()

	if rt.IsHealthy() {
		t.Error("Expected uninitialized runtime to be unhealthy")
	}

	if rt.Config() != nil {
		t.Error("Expected no config before Initialize")
	}

	cfg := testConfig()
	if err := rt.Initialize(cfg); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer rt.Cleanup(ctx)

	if rt.Config() != cfg {
		t.Error("Expected Config to return the initialization config")
	}

	loop, background, err := rt.Get(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loop.Name() != "runtime-loop" {
		t.Errorf("Expected loop runtime-loop, got %s", loop.Name())
	}
	if background.Label() != "runtime-test" {
		t.Errorf("Expected background runtime-test, got %s", background.Label())
	}
	if !rt.IsHealthy() {
		t.Error("Expected initialized runtime to be healthy")
	}

	// A second Initialize keeps the existing loop.
	if err := rt.Initialize(testConfig()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	again, _, _ := rt.Get(ctx)
	if again != loop {
		t.Error("Expected the same loop after re-initialization")
	}

	value, err := future.Await(ctx, future.SubmitValue(background, loop, func() int { return 5 }))
	if err != nil || value != 5 {
		t.Errorf("Expected 5, got %d (%v)", value, err)
	}

	if err := rt.Cleanup(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rt.IsHealthy() {
		t.Error("Expected cleaned up runtime to be unhealthy")
	}
}

func TestRuntimeCleanupTimeout(t *testing.T) {
	rt := &Runtime{}
	if err := rt.Initialize(testConfig()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	loop, background, _ := rt.Get(context.Background())
	release := make(chan struct{})
	future.SubmitValue(background, loop, func() bool {
		<-release
		return true
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rt.Cleanup(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
	close(release)

	if rt.IsHealthy() {
		t.Error("Expected runtime to be unhealthy after a failed cleanup")
	}

	// The next Get must not hand out the closed service.
	if err := rt.Initialize(testConfig()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer rt.Cleanup(context.Background())

	freshLoop, fresh, err := rt.Get(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fresh == background {
		t.Fatal("Expected a new background service after a failed cleanup")
	}
	if _, err := future.Await(context.Background(), future.SubmitValue(fresh, freshLoop, func() int { return 1 })); err != nil {
		t.Errorf("Expected fresh service to accept work, got %v", err)
	}
}
