// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"morphecms/internal/auth"
	"morphecms/internal/cache"
	"morphecms/internal/config"
	"morphecms/internal/content"
	"morphecms/internal/database"
	"morphecms/internal/handlers"
	"morphecms/internal/metrics"
	"morphecms/internal/middleware"
	"morphecms/internal/router"
	"morphecms/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "version", Version)
	metrics.Init(Version)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	// The public response cache is optional; without Valkey every public
	// read goes to PostgreSQL.
	var (
		valkey      *redis.Client
		public      handlers.ResponseCache
		invalidator handlers.Invalidator
	)
	if addr := cfg.ValkeyAddr(); addr != "" {
		valkey, err = cache.ConnectValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, public cache disabled", "error", err)
		} else {
			defer valkey.Close()
			rc := cache.NewResponseCache(valkey, cfg.PublicCacheTTL)
			public, invalidator = rc, rc
		}
	} else {
		slog.Info("public cache disabled")
	}

	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	tags := store.NewTagStore(db)
	managers := handlers.Managers{
		Posts:      content.NewPostManager(posts, categories, tags),
		Categories: content.NewTermManager(categories),
		Tags:       content.NewTermManager(tags),
		Services:   content.NewServiceManager(store.NewServiceStore(db)),
		Careers:    content.NewCareerManager(store.NewCareerStore(db)),
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer limiter.Stop()

	health := map[string]handlers.Pinger{"database": db}
	if valkey != nil {
		health["valkey"] = handlers.PingFunc(func(ctx context.Context) error {
			return valkey.Ping(ctx).Err()
		})
	}

	r := router.New(router.Deps{
		Auth:         handlers.NewAuth(auth.NewService(store.NewUserStore(db), tokens), cfg.IsDev()),
		Admin:        handlers.NewAdmin(managers, invalidator, cfg.IsDev()),
		Public:       handlers.NewPublic(managers, public, cfg.IsDev()),
		Health:       handlers.Health(Version, health),
		Tokens:       tokens,
		LoginLimiter: limiter,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return run(ctx, srv, db)
}

// run serves until SIGINT or SIGTERM, then drains connections for up to
// 30 seconds.
func run(ctx context.Context, srv *http.Server, db *sql.DB) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	stats := db.Stats()
	slog.Info("server stopped gracefully", "db_open_connections", stats.OpenConnections)
	return nil
}
