package processor

import (
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
	"github.com/nguyentantai21042004/caption-qa/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	sessions session.Service
	executor executor.Executor
	format   models.OutputFormat
	logger   logger.Logger
}

// New creates a Processor. Summaries use cfg.Summarizer.DefaultFormat.
func New(cfg *config.Config, sessions session.Service, exec executor.Executor, log logger.Logger) Processor {
	format, err := models.ParseOutputFormat(cfg.Summarizer.DefaultFormat)
	if err != nil {
		format = models.FormatBulletPoints
	}

	return &implProcessor{
		cfg:      cfg,
		sessions: sessions,
		executor: exec,
		format:   format,
		logger:   log,
	}
}
