package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"server-utilities/internal/config"
	"server-utilities/internal/middleware"
	"server-utilities/pkg/lambda"
)

// NewEngine builds a gin engine that routes every request to handler, the
// way an API Gateway {proxy+} resource does
func NewEngine(cfg *config.Config, handler lambda.Handler, logger *logrus.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestSizeLimit(middleware.MaxPayloadSize))

	router.NoRoute(Adapt(handler, cfg.Stage, logger))
	return router
}

// Server runs a gin engine until its context is cancelled
type Server struct {
	srv    *http.Server
	logger *logrus.Logger
}

// NewServer creates a new development server listening on cfg.Port
func NewServer(cfg *config.Config, handler lambda.Handler, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewEngine(cfg, handler, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.srv.Addr).Info("Development server started")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down development server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}
