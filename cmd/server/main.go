package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/caption-qa/internal/app"
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/server"
)

func main() {
	cfg, err := config.Load(app.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := app.Sessions(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	// Validate already rejected unknown formats.
	format, _ := models.ParseOutputFormat(cfg.Summarizer.DefaultFormat)

	srv := server.New(sessions, cfg.Server, format, log)
	if err := srv.Run(ctx); err != nil {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Server stopped")
}
