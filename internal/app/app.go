// Package app wires the session service from configuration. Both binaries
// share it.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/caption-qa/internal/chunker"
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/history"
	"github.com/nguyentantai21042004/caption-qa/internal/index"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
	"github.com/nguyentantai21042004/caption-qa/internal/summarizer"
	"github.com/nguyentantai21042004/caption-qa/internal/tokenizer"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
)

// ConfigPath returns $CONFIG_PATH, or config.yaml when unset.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// Sessions builds the session service and returns a cleanup func for the
// history store.
func Sessions(ctx context.Context, cfg *config.Config, log logger.Logger) (session.Service, func() error, error) {
	completer, err := llm.NewCompleter(llm.Options{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKeys:  cfg.LLM.APIKeys,
		BaseURL:  cfg.LLM.BaseURL,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create llm client: %w", err)
	}

	embedder, err := llm.NewEmbedder(llm.Options{
		Provider: cfg.Embedding.Provider,
		Model:    cfg.Embedding.Model,
		APIKeys:  cfg.Embedding.APIKeys,
		BaseURL:  cfg.Embedding.BaseURL,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create embedding client: %w", err)
	}

	store, err := history.New(ctx, cfg.History)
	if err != nil {
		return nil, nil, fmt.Errorf("create history store: %w", err)
	}

	counter := tokenizer.New(cfg.Tokenizer, log)
	if _, err := counter.CountTokens("", cfg.Tokenizer.ModelID); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("tokenizer.model_id: %w", err)
	}
	sum := summarizer.New(completer, counter, cfg.Tokenizer.ModelID, cfg.Summarizer, log)

	svc := session.New(
		chunker.New(cfg.Chunking),
		index.New(embedder, cfg.Retrieval.EmbedConcurrency, log),
		sum,
		completer,
		store,
		cfg.Retrieval.TopK,
		log,
	)

	log.Info(ctx, "LLM: %s/%s, embeddings: %s/%s, history: %s",
		cfg.LLM.Provider, cfg.LLM.Model, cfg.Embedding.Provider, cfg.Embedding.Model, cfg.History.Backend)
	return svc, store.Close, nil
}

// EnsureDirectories creates the pipeline folders if they don't exist.
func EnsureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
