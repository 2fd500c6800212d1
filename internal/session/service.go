package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/qa"
)

func (s *implService) Initialize(ctx context.Context, transcript string) (*Session, error) {
	sess, err := s.build(ctx, uuid.NewString(), transcript)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *implService) Resubmit(ctx context.Context, id, transcript string) (*Session, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	sess, err := s.build(ctx, id, transcript)
	if err != nil {
		return nil, err
	}

	// The session may have been deleted while the new index was building.
	s.mu.Lock()
	old, ok := s.sessions[id]
	if ok {
		s.sessions[id] = sess
	}
	s.mu.Unlock()
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "session %s not found", id)
	}

	old.retire()
	if err := s.history.Delete(ctx, id); err != nil {
		s.logger.Warn(ctx, "Failed to clear history of session %s: %v", id, err)
	}
	s.logger.Info(ctx, "Session %s replaced with a new transcript", id)
	return sess, nil
}

func (s *implService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "session %s not found", id)
	}
	return sess, nil
}

func (s *implService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return apperr.Newf(apperr.CodeNotFound, "session %s not found", id)
	}

	sess.retire()
	if err := s.history.Delete(ctx, id); err != nil {
		s.logger.Warn(ctx, "Failed to clear history of session %s: %v", id, err)
	}
	return nil
}

// build chunks and indexes transcript. Nothing is registered on failure.
func (s *implService) build(ctx context.Context, id, transcript string) (*Session, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, apperr.New(apperr.CodeValidation, "transcript is empty")
	}
	ctx = logger.WithFields(ctx, "session", id)

	chunks := s.chunker.Split(transcript)
	idx, err := s.builder.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Session ready: %d chunks indexed", len(chunks))
	return &Session{
		ID:         id,
		CreatedAt:  s.now(),
		chunks:     chunks,
		index:      idx,
		summarizer: s.summarizer,
		qa:         qa.New(idx, s.completer, s.topK, s.logger),
		history:    s.history,
		logger:     s.logger,
		now:        s.now,
	}, nil
}
