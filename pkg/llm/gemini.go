package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"google.golang.org/genai"
)

// geminiClient holds one genai client per API key. A rate limited key is
// rotated out for the next call; the failing call still returns its error.
type geminiClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	clients    map[int]*genai.Client
	model      string
	logger     logger.Logger
}

func newGemini(opts Options, log logger.Logger) *geminiClient {
	return &geminiClient{
		apiKeys: opts.APIKeys,
		clients: make(map[int]*genai.Client),
		model:   opts.Model,
		logger:  log,
	}
}

func (g *geminiClient) client(ctx context.Context) (*genai.Client, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.currentKey
	if cli, ok := g.clients[key]; ok {
		return cli, key, nil
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKeys[key],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, key, fmt.Errorf("create client: %w", err)
	}
	g.clients[key] = cli
	return cli, key, nil
}

// rotateKey moves past key unless another call already did.
func (g *geminiClient) rotateKey(ctx context.Context, key int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey != key || len(g.apiKeys) < 2 {
		return
	}
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.logger.Warn(ctx, "Key %d rate limited, rotating to key %d", key+1, g.currentKey+1)
}

func (g *geminiClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	cli, key, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	result, err := cli.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		if isRateLimited(err) {
			g.rotateKey(ctx, key)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			return strings.TrimSpace(text.String()), nil
		}
	}
	return "", ErrEmptyResponse
}

func (g *geminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	cli, key, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := cli.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		if isRateLimited(err) {
			g.rotateKey(ctx, key)
		}
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, ErrEmptyResponse
	}
	return result.Embeddings[0].Values, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
