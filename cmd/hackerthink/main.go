// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the HackerThink API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackerthink/internal/cache"
	"hackerthink/internal/config"
	"hackerthink/internal/database"
	"hackerthink/internal/handlers"
	"hackerthink/internal/mailer"
	"hackerthink/internal/middleware"
	"hackerthink/internal/router"
	"hackerthink/internal/session"
	"hackerthink/internal/storage"
	"hackerthink/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)
	respCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Data stores.
	userStore := store.NewUserStore(db)
	contentStore := store.NewContentStore(db)
	articleCats := store.NewArticleCategoryStore(db)
	tutorialCats := store.NewTutorialCategoryStore(db)
	newsCats := store.NewNewsCategoryStore(db)
	guestStore := store.NewGuestStore(db)
	mediaStore := store.NewMediaStore(db)
	commandStore := store.NewCommandStore(db)
	productStore := store.NewProductStore(db)
	glossaryStore := store.NewGlossaryStore(db)
	commentStore := store.NewCommentStore(db)
	labStore := store.NewLabProgressStore(db)
	smtpStore := store.NewSMTPConfigStore(db)

	taxonomy := store.NewTaxonomy(tutorialCats, newsCats, articleCats, commandStore, productStore)

	// Connect to S3-compatible object storage. Optional: uploads stay
	// local-only without it.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 replication connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 replication not configured, uploads stay on local disk only")
	}

	// Mailer: providers from the database, environment as fallback.
	var fallback *mailer.Fallback
	if cfg.SMTPHost != "" {
		fallback = &mailer.Fallback{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFrom,
			UseTLS:    true,
		}
	}
	mail := mailer.New(smtpStore, []byte(cfg.EncryptionKey), fallback)

	api := handlers.NewAPI(handlers.Deps{
		Config:    cfg,
		Sessions:  sessionStore,
		RespCache: respCache,
		Users:     userStore,
		Contents:  contentStore,
		Taxonomy:  taxonomy,
		Guests:    guestStore,
		Media:     mediaStore,
		Commands:  commandStore,
		Products:  productStore,
		Glossary:  glossaryStore,
		Comments:  commentStore,
		Labs:      labStore,
		SMTP:      smtpStore,
		Mailer:    mail,
		Storage:   storageClient,
	})

	// Anonymous comment submissions: 5 per minute per IP.
	commentLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer commentLimiter.Stop()

	r := router.New(sessionStore, api, commentLimiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
