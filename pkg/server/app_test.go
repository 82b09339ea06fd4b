package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "8000", CORSOrigins: []string{"*"}},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		Auth: config.AuthConfig{
			JWTSecret:     "jwt",
			MasterSecret:  "master",
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		Registration: config.RegistrationConfig{
			ConfirmationDelay: 10 * time.Millisecond,
			DisplayDuration:   10 * time.Millisecond,
			SessionTTL:        time.Minute,
			SweepInterval:     5 * time.Millisecond,
		},
		Live: config.LiveConfig{
			NotificationInterval: 5 * time.Millisecond,
			AnalyticsInterval:    5 * time.Millisecond,
		},
	}
}

func TestNewServesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	app, err := New(context.Background(), testConfig(t), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("created admin user").Len())
	assert.IsType(t, &ratelimit.DBLimiter{}, app.Handler.Limiter)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, app.Close())
}

func TestNewFallsBackWithoutRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.URL = "redis://127.0.0.1:1/0"
	core, logs := observer.New(zap.WarnLevel)

	app, err := New(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &ratelimit.DBLimiter{}, app.Handler.Limiter)
	assert.Equal(t, 1, logs.FilterMessage("redis unavailable, using database rate limiter").Len())
}

func TestNewLoadsCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
categories:
  - id: parks
    name: Parks
    tasks:
      - id: PRK-001
        title: Bench Painting
        difficulty: Easy
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	cfg.Registration.CatalogPath = path

	app, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()
	assert.Equal(t, 1, app.Handler.Catalog.Len())

	cfg.Registration.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "load catalog")
}

func TestStartStopsWithContext(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	app.Start(ctx)

	updates, _ := app.Handler.Live.Subscribe()
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no live update received")
	}

	cancel()
	done := make(chan error, 1)
	go func() { done <- app.Close() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("background loops did not stop")
	}

	// the rotator closes subscribers on shutdown
	for range updates {
	}
}
