package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"ritmo/internal/cache"
	"ritmo/internal/cli"
	"ritmo/internal/core"
	apphttp "ritmo/internal/http"
	applog "ritmo/internal/log"
	"ritmo/internal/services"
	"ritmo/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	kv := cli.InitKV(logger, cfg.SQLiteDBPath)

	st := store.New(kv)
	if err := st.Load(context.Background()); err != nil {
		logger.Error("Failed to load stored data", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		kv.Close()
		os.Exit(1)
	}

	snapshots := cache.NewLRUCache[services.Snapshot](cfg.CacheMaxEntries, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(snapshots)
	cacheManager.StartCleanup(10 * time.Minute)

	tracker := services.NewTrackerService(st, snapshots)

	// DefaultRange passed Validate, parse cannot fail here.
	defaultRange, _ := core.ParseRange(cfg.DefaultRange)

	srv := apphttp.NewServer(":"+cfg.Port, tracker, logger, defaultRange)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cacheManager.Stop()
		if err := kv.Close(); err != nil {
			logger.Error("Blob store close error", applog.FieldError, err)
		}
	})

	logger.Info("Starting ritmo server",
		"port", cfg.Port,
		"db_path", cfg.SQLiteDBPath,
		applog.FieldRange, defaultRange.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
