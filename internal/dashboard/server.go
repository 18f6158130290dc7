// Package dashboard serves the assembled views as a JSON API.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zulandar/cave/internal/view"
	"go.uber.org/zap"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	Loader   *view.Loader
	Port     int
	Out      io.Writer
	Log      *zap.Logger
	Registry *prometheus.Registry
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Loader == nil {
		return fmt.Errorf("dashboard: loader is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8501
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(opts.Loader, opts.Registry, opts.Log)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with middleware and routes. A nil reg
// gets a fresh registry, so /metrics only exposes collectors registered on
// it.
func NewRouter(loader *view.Loader, reg *prometheus.Registry, log *zap.Logger) *gin.Engine {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracingMiddleware())
	router.Use(newHTTPMetrics(reg).middleware())
	router.Use(requestLogger(log))

	registerRoutes(router, loader, reg)
	return router
}
