package session

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/caption-qa/internal/chunker"
	"github.com/nguyentantai21042004/caption-qa/internal/history"
	"github.com/nguyentantai21042004/caption-qa/internal/index"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/summarizer"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
)

type implService struct {
	chunker    chunker.Chunker
	builder    index.Builder
	summarizer summarizer.Summarizer
	completer  llm.Completer
	history    history.Store
	topK       int
	logger     logger.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a Service. topK is the number of chunks each answer draws on.
func New(
	c chunker.Chunker,
	builder index.Builder,
	sum summarizer.Summarizer,
	completer llm.Completer,
	store history.Store,
	topK int,
	log logger.Logger,
) Service {
	return &implService{
		chunker:    c,
		builder:    builder,
		summarizer: sum,
		completer:  completer,
		history:    store,
		topK:       topK,
		logger:     log,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}
