package qa

import "context"

// Pipeline answers questions from the chunks of one indexed transcript.
type Pipeline interface {
	Answer(ctx context.Context, question string) (string, error)
}
