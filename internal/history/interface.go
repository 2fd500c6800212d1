package history

import (
	"context"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

// Store keeps the append-only question log of each session.
type Store interface {
	Append(ctx context.Context, sessionID string, ex models.QAExchange) error
	// List returns exchanges oldest first. Unknown sessions yield an empty slice.
	List(ctx context.Context, sessionID string) ([]models.QAExchange, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
