package index

import (
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
)

const defaultConcurrency = 4

type implBuilder struct {
	embedder    llm.Embedder
	concurrency int
	logger      logger.Logger
}

// New creates a Builder that embeds up to concurrency chunks at a time.
func New(embedder llm.Embedder, concurrency int, log logger.Logger) Builder {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &implBuilder{
		embedder:    embedder,
		concurrency: concurrency,
		logger:      log,
	}
}
