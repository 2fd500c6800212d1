package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
)

// Options configures a Watcher. Extensions are matched case-insensitively.
type Options struct {
	Dir           string
	Extensions    []string
	MaxConcurrent int
	// Settle is how long a new file is left alone before handling, so
	// writers can finish. Zero uses 500ms.
	Settle time.Duration
}

// New creates a Watcher on opts.Dir running at most opts.MaxConcurrent handlers.
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	settle := opts.Settle
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &implWatcher{
		inputDir:      opts.Dir,
		extensions:    exts,
		settle:        settle,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		inFlight:      make(map[string]struct{}),
	}, nil
}
