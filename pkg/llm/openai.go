package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	cli   *openai.Client
	model string
}

func newOpenAI(opts Options) *openAIClient {
	clientConfig := openai.DefaultConfig(opts.APIKeys[0])
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}
	return &openAIClient{
		cli:   openai.NewClientWithConfig(clientConfig),
		model: opts.Model,
	}
}

// Complete sends prompt as a single user message.
func (c *openAIClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: wireTemperature(temperature),
	}

	resp, err := c.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: []string{text},
	}
	resp, err := c.cli.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp.Data[0].Embedding, nil
}

// wireTemperature keeps a zero temperature on the wire: the request field is
// omitempty, and an omitted temperature means the API default of 1.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
