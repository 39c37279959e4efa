// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the jmcomic HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load the library option from jm.yaml (a failure leaves it absent).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/jmcomic-api/internal/api"
	"github.com/taibuivan/jmcomic-api/internal/comic"
	"github.com/taibuivan/jmcomic-api/internal/jm"
	"github.com/taibuivan/jmcomic-api/internal/platform/config"
	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
	"github.com/taibuivan/jmcomic-api/internal/platform/logging"
	redisstore "github.com/taibuivan/jmcomic-api/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log, _ := logging.New(logging.Options{})
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	// Rebuild the logger now that level and file are known.
	log, logCloser := logging.New(logging.Options{Debug: cfg.Debug, LogFile: cfg.LogFile})
	slog.SetDefault(log)
	defer logCloser.Close()

	log.Info("[jmcomic-api] service_initializing",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
	)

	// ── 3. Library Option ─────────────────────────────────────────────────
	// A broken jm.yaml must not stop the process: /health reports it.
	option := loadOption(cfg, log)

	// Root context for startup. Use a short deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 4. Redis (optional detail cache) ──────────────────────────────────
	var cache comic.DetailCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		cache = comic.NewRedisDetailCache(rdb, cfg.DetailCacheTTL)
	}

	// ── 5. Wiring ─────────────────────────────────────────────────────────
	factory := jm.NewFactory(log)
	liveness, domains := api.NewHealthHandlers(option, factory, log)

	comicService := comic.NewService(option, factory, cache, log)
	if !comicService.Ready() {
		log.Warn("jmcomic option missing, comic routes will answer 500")
	}
	comicHandler := comic.NewHandler(comicService, comic.Timeouts{
		Request:  cfg.RequestTimeout,
		Download: cfg.DownloadTimeout,
	})

	server := api.NewServer(cfg, log, api.Handlers{
		Liveness: liveness,
		Domains:  domains,
		Comic:    comicHandler,
	})

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// loadOption reads jm.yaml and returns nil when it cannot be used.
func loadOption(cfg *config.Config, log *slog.Logger) *jm.Option {
	path, err := cfg.ResolveOptionPath()
	if err != nil {
		log.Error("failed to initialize jmcomic option", slog.Any("error", err))
		return nil
	}

	option, err := jm.LoadOption(path, jm.Overrides{Proxy: cfg.Proxy}, log)
	if err != nil {
		log.Error("failed to initialize jmcomic option",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil
	}

	log.Info("jmcomic option loaded",
		slog.String("config_file", option.ConfigFilePath()),
		slog.String("base_dir", option.BaseDir()),
		slog.String("client", string(option.Client.Impl)),
		slog.Any("domains", option.Client.Domains),
	)
	return option
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
