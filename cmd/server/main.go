package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lessonforge/lessonforge/internal/ai"
	"github.com/lessonforge/lessonforge/internal/catalog"
	"github.com/lessonforge/lessonforge/internal/lesson"
	"github.com/lessonforge/lessonforge/internal/platform/cache"
	"github.com/lessonforge/lessonforge/internal/platform/config"
	"github.com/lessonforge/lessonforge/internal/platform/database"
	"github.com/lessonforge/lessonforge/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var db *database.DB
	var store lesson.Store
	if cfg.Database.URL != "" {
		db, err = database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		store, err = lesson.NewPostgresStore(ctx, db.Pool)
		if err != nil {
			slog.Error("failed to initialize lesson store", "error", err)
			os.Exit(1)
		}
		slog.Info("lesson store ready", "backend", "postgres")
	} else {
		slog.Warn("no database configured, lesson plans will not survive restarts")
		store = lesson.NewMemoryStore()
	}

	var redisCache *cache.Cache
	if cfg.Cache.URL != "" {
		redisCache, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()

		store = lesson.NewCachedStore(store, redisCache.Client)
		slog.Info("lesson list cache enabled")
	}

	if !cfg.HasAI() {
		slog.Warn("no AI API key configured, generation endpoints will fail")
	}

	clientOpts := []ai.Option{ai.WithTimeout(cfg.AI.Timeout)}
	if cfg.AI.BaseURL != "" {
		clientOpts = append(clientOpts, ai.WithBaseURL(cfg.AI.BaseURL))
	}
	if cfg.AI.Model != "" {
		clientOpts = append(clientOpts, ai.WithModel(cfg.AI.Model))
	}
	if cfg.AI.ImageModel != "" {
		clientOpts = append(clientOpts, ai.WithImageModel(cfg.AI.ImageModel))
	}
	gateway := ai.NewClient(cfg.AI.APIKey, clientOpts...)
	images := ai.NewImageGenerator(gateway, gateway.ImageModel(), cfg.AI.ImageSpacing)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	srv := server.New(gateway, images, store, cat, cfg.Auth.JWTSecret, gateway.Configured())
	srv.SetReadyCheck(func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.HealthCheck(checkCtx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
		if redisCache != nil {
			if err := redisCache.HealthCheck(checkCtx); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
		}
		return nil
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Routes(),
		// Image batches run sequentially with spacing, so writes can take
		// minutes for long slide decks.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "model", gateway.Model())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
