// Package main is the entry point for the guitarchords API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/ilstam/guitarchords/internal/cache"
	"github.com/ilstam/guitarchords/internal/config"
	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/handler"
	"github.com/ilstam/guitarchords/internal/mailer"
	"github.com/ilstam/guitarchords/internal/middleware"
	"github.com/ilstam/guitarchords/internal/repo"
	"github.com/ilstam/guitarchords/internal/scheduler"
	"github.com/ilstam/guitarchords/internal/service"
	"github.com/ilstam/guitarchords/migrations"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, toml or json)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "count", applied)

	// --- Cache ------------------------------------------------------------
	lists, stats, closeCache, err := newCaches(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// --- Services ---------------------------------------------------------
	var (
		artistRepo   = repo.NewArtistRepo(pool)
		songRepo     = repo.NewSongRepo(pool)
		commentRepo  = repo.NewCommentRepo(pool)
		bookmarkRepo = repo.NewBookmarkRepo(pool)
	)
	slugLen := service.WithSlugMaxLength(cfg.SlugMaxLength)
	mods := service.WithModerators(cfg.Moderators...)
	artists := service.NewArtistService(artistRepo, songRepo, slugLen, mods)
	songs := service.NewSongService(songRepo, artists, lists, stats, slugLen, mods)
	if len(cfg.Moderators) == 0 {
		logger.Warn("no moderators configured; songs cannot be published")
	}

	var sender mailer.Sender = mailer.NewLog(logger)
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResend(cfg.ResendAPIKey)
	}

	// --- Scheduler --------------------------------------------------------
	sched := scheduler.New(logger, 5*time.Minute)
	err = sched.Add("refresh-popular", cfg.CacheWarmSchedule, func(ctx context.Context) error {
		_, err := songs.RefreshPopular(ctx)
		return err
	})
	if err != nil {
		return err
	}
	sched.Start()

	// --- Router -----------------------------------------------------------
	// Order: RequestID → RealIP → Username → Logger → Recoverer → CORS → body limit.
	srv := handler.NewServer(handler.Services{
		Artists:   artists,
		Songs:     songs,
		Comments:  service.NewCommentService(commentRepo, songRepo),
		Bookmarks: service.NewBookmarkService(bookmarkRepo, songRepo),
		Contact:   service.NewContactService(sender, cfg.ContactFrom, cfg.ContactTo),
		DB:        pool,
	}, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Username)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler did not stop in time", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// newCaches returns Redis-backed caches when REDIS_URL is set and in-process
// ones otherwise. The returned func releases the Redis client.
func newCaches(ctx context.Context, cfg config.Config) (cache.Cache[[]domain.Song], cache.Cache[domain.Stats], func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory[[]domain.Song](time.Hour), cache.NewMemory[domain.Stats](time.Hour), func() {}, nil
	}

	client, err := cache.Open(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	var rc redis.UniversalClient = client
	return cache.NewRedis[[]domain.Song](rc, "guitarchords", time.Hour),
		cache.NewRedis[domain.Stats](rc, "guitarchords", time.Hour),
		func() { _ = client.Close() },
		nil
}
