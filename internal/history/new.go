package history

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/caption-qa/internal/config"
)

// New creates the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
