package history

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]models.QAExchange
}

// NewMemory creates a process-local Store.
func NewMemory() Store {
	return &memoryStore{sessions: make(map[string][]models.QAExchange)}
}

func (m *memoryStore) Append(ctx context.Context, sessionID string, ex models.QAExchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], ex)
	return nil
}

func (m *memoryStore) List(ctx context.Context, sessionID string) ([]models.QAExchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.QAExchange, len(m.sessions[sessionID]))
	copy(out, m.sessions[sessionID])
	return out, nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memoryStore) Close() error { return nil }
