package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the provider answers without content.
var ErrEmptyResponse = errors.New("empty response from model")

// Completer sends a single prompt to a chat model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Options selects and authenticates a provider.
type Options struct {
	Provider string
	Model    string
	APIKeys  []string
	BaseURL  string
}
