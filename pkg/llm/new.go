package llm

import (
	"fmt"

	"github.com/nguyentantai21042004/caption-qa/internal/logger"
)

// NewCompleter builds a chat client for opts.Provider ("openai" or "gemini").
func NewCompleter(opts Options, log logger.Logger) (Completer, error) {
	if len(opts.APIKeys) == 0 {
		return nil, fmt.Errorf("no api key for %s", opts.Provider)
	}
	switch opts.Provider {
	case "openai":
		return newOpenAI(opts), nil
	case "gemini":
		return newGemini(opts, log), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}

// NewEmbedder builds an embedding client for opts.Provider.
func NewEmbedder(opts Options, log logger.Logger) (Embedder, error) {
	if len(opts.APIKeys) == 0 {
		return nil, fmt.Errorf("no api key for %s", opts.Provider)
	}
	switch opts.Provider {
	case "openai":
		return newOpenAI(opts), nil
	case "gemini":
		return newGemini(opts, log), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}
