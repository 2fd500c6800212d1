package watcher

import "context"

// Watcher hands new files in a directory to an EventHandler.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created file.
type EventHandler func(ctx context.Context, filePath string) error
