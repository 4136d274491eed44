package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/summitlabs/summit/internal/api"
	"github.com/summitlabs/summit/internal/config"
	"github.com/summitlabs/summit/internal/pipeline"
	"github.com/summitlabs/summit/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the summarizer client.
	client := summarize.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	client.Stats = summarize.NewStats(cfg.StatsWindow)

	// Initialize the pipeline.
	processor := pipeline.NewProcessor(cfg, client, log)

	// Initialize HTTP server.
	srv := api.NewServer(processor, client.Stats, client.Model(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
	}()

	log.Info("starting summit", "port", cfg.Port, "compositor", cfg.Compositor)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
