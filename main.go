package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"konigfood_server/api"
	"konigfood_server/catalog"
	"konigfood_server/config"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize the logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := storage.NewRedisKV(logger, cfg)
	store := catalog.NewGitHubStore(logger, cfg.Catalog)
	cache := catalog.NewCache(logger, store, cfg.Catalog.CacheTTL)

	// Warm the catalog so the first request does not pay the fetch.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := cache.Refresh(warmCtx); err != nil {
		logger.Warn("Initial catalog fetch failed, serving lazily", gecho.Field("error", err))
	}
	warmCancel()

	cache.StartRefreshLoop(ctx, cfg.Catalog.RefreshInterval)

	r := api.App(cfg, kv, store, cache)

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	setupGracefulShutdown(logger, server, cancel)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// setupGracefulShutdown sets up signal handling for graceful application shutdown
func setupGracefulShutdown(logger *gecho.Logger, server *http.Server, cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig))

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", gecho.Field("error", err))
			os.Exit(1)
		}
	}()
}
