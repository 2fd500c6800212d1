package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/caption-qa/internal/app"
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/processor"
	"github.com/nguyentantai21042004/caption-qa/internal/watcher"
	"github.com/nguyentantai21042004/caption-qa/pkg/executor"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(app.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info(ctx, "Transcript Summary Pipeline")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	if err := app.EnsureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	sessions, closeStore, err := app.Sessions(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	proc := processor.New(cfg, sessions, executor.New(), log)

	w, err := watcher.New(watcher.Options{
		Dir:           cfg.Paths.Input,
		Extensions:    processor.SupportedExtensions(),
		MaxConcurrent: cfg.Performance.MaxConcurrent,
	}, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Pipeline ready. Monitoring: %s, output: %s", cfg.Paths.Input, cfg.Paths.Output)
	log.Info(ctx, "Summary format: %s, token threshold: %d, questions: %d",
		cfg.Summarizer.DefaultFormat, cfg.Summarizer.TokenThreshold, len(cfg.Pipeline.Questions))
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	log.Info(ctx, "Pipeline stopped")
}
