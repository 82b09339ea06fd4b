package handler

import (
	"context"
	"net/http"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/logging"
	"github.com/esamadhan/volunteer-api/pkg/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	if err := config.LoadEnvFiles(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.ReleaseMode)
	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise API", zap.Error(err))
	}
	// Serverless instances are frozen between requests; the loops only run while warm.
	app.Start(context.Background())
	r = app.Router
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
