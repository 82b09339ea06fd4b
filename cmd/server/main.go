package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/logging"
	"github.com/esamadhan/volunteer-api/pkg/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is done. Errors before the logger exists are
// returned for main to print.
func run(ctx context.Context) error {
	// Load .env if it exists
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Server.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.Server.GinMode)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.MasterSecret == "" {
		logger.Warn("JWT_SECRET or API_MASTER_SECRET is empty; admin tokens and API keys are not secure")
	}

	ctx, stopLoops := context.WithCancel(ctx)
	defer stopLoops()

	app, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise API", zap.Error(err))
		return err
	}
	app.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-serveErr:
		logger.Error("could not run server", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	stopLoops()
	if err := app.Close(); err != nil {
		logger.Error("cleanup failed", zap.Error(err))
	}
	return runErr
}
