// Package server wires the identity service: storage, the user service and
// the HTTP API, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/cache"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
	"github.com/dmitrijs2005/gophprofile/internal/server/httpapi"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophprofile/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	cache       *redis.Client
	userService *services.UserService
}

// NewApp opens storage (PostgreSQL when a DSN is configured, memory
// otherwise), applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}

		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	} else {
		logger.Warn(ctx, "no database configured, users are kept in memory")
		rm = repomanager.NewMemoryRepositoryManager()
	}

	var rc *redis.Client
	if c.RedisURL != "" {
		var err error
		rc, err = cache.NewRedisClient(ctx, c.RedisURL)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("redis init error: %w", err)
		}
	}

	us := services.NewUserService(db, rm, c)

	return &App{config: c, logger: logger, db: db, cache: rc, userService: us}, nil
}

// Users exposes the user service to the command layer (seeding).
func (app *App) Users() *services.UserService { return app.userService }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the HTTP API until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.ListenAddr, app.logger, app.userService,
		httpapi.WithUpdateRateLimit(app.cache, app.config.ProfileUpdatesPerMinute))
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		return err
	}
	return nil
}

// Close releases the database and the Redis connection.
func (app *App) Close() error {
	var errs []error
	if app.cache != nil {
		errs = append(errs, app.cache.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
