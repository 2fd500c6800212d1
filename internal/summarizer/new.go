package summarizer

import (
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/tokenizer"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
)

const (
	DefaultTokenThreshold = 4000
	defaultConcurrency    = 4
)

type implSummarizer struct {
	llm         llm.Completer
	counter     tokenizer.Counter
	modelID     string
	threshold   int
	concurrency int
	logger      logger.Logger
}

// New creates a Summarizer. modelID selects the vocabulary used to measure
// the transcript against cfg.TokenThreshold.
func New(completer llm.Completer, counter tokenizer.Counter, modelID string, cfg config.SummarizerConfig, log logger.Logger) Summarizer {
	threshold := cfg.TokenThreshold
	if threshold <= 0 {
		threshold = DefaultTokenThreshold
	}
	concurrency := cfg.MapConcurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &implSummarizer{
		llm:         completer,
		counter:     counter,
		modelID:     modelID,
		threshold:   threshold,
		concurrency: concurrency,
		logger:      log,
	}
}
