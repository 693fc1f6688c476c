package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubenotes/api"
	"tubenotes/config"
	"tubenotes/logging"
	"tubenotes/pipeline"
	"tubenotes/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Any("config", cfg))

	ctx := context.Background()

	deps, cleanup, err := pipeline.Wire(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to wire pipeline", slog.Any("err", err))
		os.Exit(1)
	}
	defer cleanup()

	apiDeps := api.Deps{
		Runner:         pipeline.NewRunner(deps),
		Artifacts:      deps.Artifacts,
		Feeds:          youtube.NewFeedClient(&http.Client{Timeout: 15 * time.Second}, ""),
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	// Metadata is optional; previews fall back to the thumbnail only
	if cfg.YouTube.DataAPIKey != "" {
		metadata, err := youtube.NewMetadataClient(ctx, cfg.YouTube.DataAPIKey)
		if err != nil {
			logger.Warn("YouTube Data API disabled", slog.Any("err", err))
		} else {
			apiDeps.Metadata = metadata
		}
	}

	server := api.NewServer(cfg.Server.Port, apiDeps)
	errCh := server.Start()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.Any("err", err))
			cleanup()
			os.Exit(1)
		}
	case <-sigChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("err", err))
	}
	logger.Info("server stopped")
}
