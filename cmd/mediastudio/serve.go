// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"mediastudio/internal/cache"
	"mediastudio/internal/config"
	"mediastudio/internal/contact"
	"mediastudio/internal/content"
	"mediastudio/internal/database"
	"mediastudio/internal/handlers"
	"mediastudio/internal/markdown"
	"mediastudio/internal/middleware"
	"mediastudio/internal/moderation"
	"mediastudio/internal/queue"
	"mediastudio/internal/router"
	"mediastudio/internal/storage"
	"mediastudio/internal/store"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `serve migrates the database and starts the API server. Valkey, the S3
archive and message moderation are optional; the server runs without them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	site, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	md, err := markdown.ByName(cfg.MarkdownRenderer)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Valkey backs the response cache and the inquiry notification stream.
	// Without it responses are uncached and nobody is notified.
	var (
		valkey    *redis.Client
		respCache cache.Store
	)
	valkey, err = cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Warn("valkey unavailable, caching and notifications disabled", "error", err)
		valkey = nil
	} else {
		defer valkey.Close()
		respCache = cache.NewResponseCache(valkey, cfg.CacheTTL, site.Version())
	}

	transport, err := buildTransport(cfg, store.NewInquiryStore(db), valkey)
	if err != nil {
		return err
	}

	registry := contact.NewRegistry(transport, cfg.FormTTL)
	defer registry.Stop()
	limiter := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow)
	defer limiter.Stop()

	r := router.New(router.Deps{
		Public:        handlers.NewPublic(site, md),
		Contact:       handlers.NewContact(registry, transport, cfg.ClientHashKey),
		Cache:         respCache,
		RateLimiter:   limiter,
		SecureCookies: !cfg.IsDev(),
	})

	// WriteTimeout must cover a submission waiting on moderation and storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: handlers.DefaultSubmitTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// buildTransport assembles the submission pipeline: optional moderation,
// then the inquiry store, whose failure fails the submission, then the
// notification stream and S3 archive, whose failures are only logged.
func buildTransport(cfg *config.Config, inquiries *store.InquiryStore, valkey *redis.Client) (contact.Transport, error) {
	var steps []contact.Transport

	if cfg.ModerationProvider != "" {
		key, baseURL := cfg.ModerationKey()
		m, err := moderation.New(cfg.ModerationProvider, key, baseURL)
		if err != nil {
			return nil, err
		}
		steps = append(steps, moderation.NewScreen(m))
		slog.Info("inquiry moderation enabled", "provider", cfg.ModerationProvider)
	}

	steps = append(steps, inquiries)

	var optional []contact.Transport
	if valkey != nil {
		optional = append(optional, queue.NewNotifier(valkey, queue.DefaultStream))
	}
	archive, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		return nil, fmt.Errorf("initialize s3 archive: %w", err)
	}
	if archive != nil {
		optional = append(optional, archive)
		slog.Info("inquiry archive enabled", "endpoint", cfg.S3Endpoint, "bucket", archive.Bucket())
	} else {
		slog.Warn("s3 archive not configured, inquiries are stored in postgres only")
	}
	if len(optional) > 0 {
		steps = append(steps, contact.BestEffort(optional...))
	}

	return contact.Chain(steps...), nil
}
