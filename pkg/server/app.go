package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nischitpatel/stock-price-analysis-system/pkg/cache"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/config"
	xhttp "github.com/nischitpatel/stock-price-analysis-system/pkg/http"
	applogger "github.com/nischitpatel/stock-price-analysis-system/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		cache:   cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
	}
	if a.cfg.Metrics.Enabled {
		path := a.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		opts = append(opts, xhttp.WithMetricsPath(path))
	}

	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("env", a.cfg.Environment),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
