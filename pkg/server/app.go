package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/auth"
	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/esamadhan/volunteer-api/pkg/demo"
	"github.com/esamadhan/volunteer-api/pkg/handlers"
	"github.com/esamadhan/volunteer-api/pkg/notify"
	"github.com/esamadhan/volunteer-api/pkg/ratelimit"
	"github.com/esamadhan/volunteer-api/pkg/registration"
	"github.com/esamadhan/volunteer-api/pkg/sessions"
	"go.uber.org/zap"
)

// App is the assembled API: its handler dependencies, the router and the
// background loops that keep sessions and the live feeds ticking.
type App struct {
	Handler *handlers.Handler
	Router  http.Handler

	cfg    *config.Config
	logger *zap.Logger
	redis  *ratelimit.RedisLimiter
	wg     sync.WaitGroup
}

// New wires storage, auth, the catalog and the session store from cfg
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	a := auth.New(cfg.Auth)
	created, err := a.EnsureAdminExists(db, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Info("created admin user", zap.String("username", cfg.Auth.AdminUsername))
	}

	cat, err := loadCatalog(cfg.Registration.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", zap.Int("categories", cat.Len()))

	app := &App{cfg: cfg, logger: logger}

	var limiter ratelimit.Limiter = ratelimit.NewDBLimiter(db, logger)
	if cfg.Redis.URL != "" {
		rl, err := ratelimit.NewRedisLimiter(ctx, cfg.Redis.URL, logger)
		if err != nil {
			logger.Warn("redis unavailable, using database rate limiter", zap.Error(err))
		} else {
			app.redis = rl
			limiter = rl
		}
	}

	store := sessions.NewStore(cat, sessions.Options{
		TTL: cfg.Registration.SessionTTL,
		Registration: registration.Options{
			ConfirmationDelay: cfg.Registration.ConfirmationDelay,
			DisplayDuration:   cfg.Registration.DisplayDuration,
			Logger:            logger.Named("registration"),
		},
		Logger: logger.Named("sessions"),
	})

	app.Handler = &handlers.Handler{
		DB:        db,
		Auth:      a,
		Catalog:   cat,
		Sessions:  store,
		Votes:     demo.NewVotes(),
		Analytics: demo.NewAnalytics(time.Now().UnixNano()),
		Live:      notify.NewRotator(nil, logger.Named("live")),
		Limiter:   limiter,
		Logger:    logger,
	}
	app.Router = handlers.NewRouter(app.Handler, cfg.Server.CORSOrigins)
	return app, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// Start runs the session sweeper and the live feeds until ctx is cancelled
func (a *App) Start(ctx context.Context) {
	loops := []func(){
		func() { a.Handler.Sessions.Run(ctx, a.cfg.Registration.SweepInterval) },
		func() { a.Handler.Live.Run(ctx, a.cfg.Live.NotificationInterval) },
		func() { a.Handler.Analytics.Run(ctx, a.cfg.Live.AnalyticsInterval) },
	}
	for _, loop := range loops {
		a.wg.Add(1)
		go func(run func()) {
			defer a.wg.Done()
			run()
		}(loop)
	}
}

// Close waits for the background loops, then releases the redis client and
// the database pool.
func (a *App) Close() error {
	a.wg.Wait()
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if sqlDB, err := a.Handler.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
