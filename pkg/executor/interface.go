package executor

import "context"

// Executor runs external tools such as ffmpeg and whisper.
type Executor interface {
	// Execute runs name with args and returns its stdout. The process is
	// killed when ctx is cancelled.
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
