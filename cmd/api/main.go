package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/livecanvas/dashboard-backend/config"
	"github.com/livecanvas/dashboard-backend/internal/api/http/middleware"
	"github.com/livecanvas/dashboard-backend/internal/api/http/routes"
	authrepo "github.com/livecanvas/dashboard-backend/internal/auth/repository"
	authsvc "github.com/livecanvas/dashboard-backend/internal/auth/service"
	bindingrepo "github.com/livecanvas/dashboard-backend/internal/bindings/repository"
	bindingsvc "github.com/livecanvas/dashboard-backend/internal/bindings/service"
	"github.com/livecanvas/dashboard-backend/internal/bootstrap"
	dashboardrepo "github.com/livecanvas/dashboard-backend/internal/dashboards/repository"
	dashboardsvc "github.com/livecanvas/dashboard-backend/internal/dashboards/service"
	"github.com/livecanvas/dashboard-backend/internal/editor"
	"github.com/livecanvas/dashboard-backend/internal/livevalues"
	liverepo "github.com/livecanvas/dashboard-backend/internal/livevalues/repository"
	"github.com/livecanvas/dashboard-backend/internal/logging"
	"github.com/livecanvas/dashboard-backend/internal/maintenance"
	"github.com/livecanvas/dashboard-backend/internal/observability/metrics"
	"github.com/livecanvas/dashboard-backend/internal/storage/postgres"
	storageredis "github.com/livecanvas/dashboard-backend/internal/storage/redis"
)

const serviceName = "dashboard-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Options{
		Level:       cfg.App.LogLevel,
		Environment: cfg.App.Environment,
		Service:     serviceName,
		Version:     cfg.App.Version,
	})
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		version, err := postgres.Migrate(sqlDB)
		if err != nil {
			return err
		}
		logger.Info().Uint("version", version).Msg("database schema up to date")
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      postgres.DSN(&cfg.Database),
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = storageredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		logger.Info().Msg("redis connected")
	} else {
		logger.Warn().Msg("REDIS_URL not set, editor sessions and revocations are kept in memory")
	}

	scheduler := maintenance.NewScheduler(logger)

	// live values
	var liveStore liverepo.Store = liverepo.NewPGStore(pool)
	if rdb != nil {
		liveStore = liverepo.NewCachedStore(liveStore, rdb, 0)
	}
	var resolver *livevalues.Resolver
	resolver = livevalues.NewResolver(liveStore, livevalues.Options{
		Interval:     cfg.LiveValues.PollInterval,
		FetchTimeout: cfg.LiveValues.FetchTimeout,
		Logger:       logger.With().Str("component", "resolver").Logger(),
		OnRefresh: func(err error, took time.Duration) {
			metrics.ObserveLiveRefresh(err, took, len(resolver.Snapshot()))
		},
	})

	// dashboards and bindings
	dashboards := dashboardsvc.NewDashboardService(dashboardrepo.NewDashboardRepository(sqlDB))
	bindings := bindingsvc.NewBindingService(bindingrepo.NewBindingRepository(sqlDB))

	// auth
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		logger.Warn().Msg("JWT_SECRET not set, using a random secret; sessions end on restart")
	}
	var revocations authsvc.RevocationStore
	if rdb != nil {
		revocations = authsvc.NewRedisRevocationStore(rdb)
	} else {
		mem := authsvc.NewMemoryRevocationStore()
		if err := scheduler.Add("revocations", "@every 5m", mem.Sweep, nil); err != nil {
			return err
		}
		revocations = mem
	}
	authService := authsvc.NewAuthService(
		authrepo.NewUserRepository(sqlDB),
		authsvc.NewTokenManager(secret, cfg.Auth.TokenTTL),
		revocations,
	)

	loginLimiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)
	if err := scheduler.Add("login-limiter", "@every 5m", func() int {
		return loginLimiter.Sweep(10 * time.Minute)
	}, nil); err != nil {
		return err
	}

	// editor sessions
	var sessions editor.SessionStore
	if rdb != nil {
		sessions = editor.NewRedisStore(rdb, cfg.Editor.SessionTTL)
	} else {
		mem := editor.NewMemoryStore(cfg.Editor.SessionTTL)
		if err := scheduler.Add("editor-sessions", "@every 1m", mem.Sweep, metrics.AddEditorSessionsSwept); err != nil {
			return err
		}
		sessions = mem
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
		DB:          pool,
		Redis:       rdb,
		V1: routes.V1Deps{
			AuthRequired: cfg.Auth.Required,
			CookieSecure: cfg.Auth.CookieSecure,
			IngestAPIKey: cfg.LiveValues.IngestAPIKey,
			LoginLimiter: loginLimiter,
			Auth:         authService,
			Dashboards:   dashboards,
			Bindings:     bindings,
			LiveValues:   liveStore,
			Resolver:     resolver,
			Sessions:     sessions,
			Gateway:      dashboards,
		},
	})

	resolver.Start(ctx)
	defer resolver.Stop()

	scheduler.Start()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Bool("auth_required", cfg.Auth.Required).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	scheduler.Stop(shutdownCtx)
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
