package session

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/caption-qa/internal/history"
	"github.com/nguyentantai21042004/caption-qa/internal/index"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/qa"
	"github.com/nguyentantai21042004/caption-qa/internal/summarizer"
)

// Session is one submitted transcript with its chunks and index.
type Session struct {
	ID        string
	CreatedAt time.Time

	chunks     []models.Chunk
	index      index.Index
	summarizer summarizer.Summarizer
	qa         qa.Pipeline
	history    history.Store
	logger     logger.Logger
	now        func() time.Time

	// retired is set once the session is deleted or replaced. A retired
	// session still answers but no longer writes to the shared history.
	mu      sync.RWMutex
	retired bool
}

// Chunks returns a copy of the session's chunks in sequence order.
func (s *Session) Chunks() []models.Chunk {
	out := make([]models.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// IndexSize is the number of indexed chunks.
func (s *Session) IndexSize() int {
	return s.index.Len()
}

// Summarize summarizes the whole transcript in the requested format.
func (s *Session) Summarize(ctx context.Context, format models.OutputFormat) (string, error) {
	return s.summarizer.Summarize(s.ctx(ctx), s.chunks, format)
}

// Report summarizes like Summarize and also returns the strategy used.
func (s *Session) Report(ctx context.Context, format models.OutputFormat) (models.Summary, error) {
	return s.summarizer.Report(s.ctx(ctx), s.chunks, format)
}

// Plan reports the summarization strategy for this transcript.
func (s *Session) Plan(ctx context.Context) (models.Strategy, int, error) {
	return s.summarizer.Plan(s.ctx(ctx), s.chunks)
}

// Answer answers question from the transcript and records the exchange.
func (s *Session) Answer(ctx context.Context, question string) (string, error) {
	ctx = s.ctx(ctx)
	asked := s.now()

	answer, err := s.qa.Answer(ctx, question)
	if err != nil {
		return "", err
	}

	ex := models.QAExchange{Question: question, Answer: answer, AskedAt: asked}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.retired {
		s.logger.Debug(ctx, "Session retired, not recording question")
		return answer, nil
	}
	if err := s.history.Append(ctx, s.ID, ex); err != nil {
		s.logger.Warn(ctx, "Failed to record question history: %v", err)
	}
	return answer, nil
}

// retire waits for in-flight history writes and stops further ones.
func (s *Session) retire() {
	s.mu.Lock()
	s.retired = true
	s.mu.Unlock()
}

// History returns the session's question log, oldest first.
func (s *Session) History(ctx context.Context) ([]models.QAExchange, error) {
	return s.history.List(s.ctx(ctx), s.ID)
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return logger.WithFields(ctx, "session", s.ID)
}
