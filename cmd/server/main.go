package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"server-utilities/internal/config"
	"server-utilities/internal/devserver"
	"server-utilities/internal/handlers"
	"server-utilities/pkg/lambda"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt := lambda.GetRuntime()
	if err := rt.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop, background, err := rt.Get(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	router := handlers.NewRouter(handlers.NewOrderHandler(loop, background, rt.Logger()))
	server := devserver.NewServer(cfg, router, rt.Logger())

	if err := server.Run(ctx); err != nil {
		rt.Logger().WithError(err).Error("Server stopped with error")
	}

	// Drain background work with timeout
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := rt.Cleanup(cleanupCtx); err != nil {
		rt.Logger().WithError(err).Error("Runtime cleanup failed")
	}

	rt.Logger().Info("Server exited")
}
