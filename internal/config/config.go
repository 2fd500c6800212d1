package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Tokenizer   TokenizerConfig   `yaml:"tokenizer"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Downloader  DownloaderConfig  `yaml:"downloader"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
	History     HistoryConfig     `yaml:"history"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
}

type LLMConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	BaseURL  string   `yaml:"base_url"`
}

// EmbeddingConfig reuses the LLM credentials when its own are empty.
type EmbeddingConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	BaseURL  string   `yaml:"base_url"`
}

type TokenizerConfig struct {
	// ModelID selects the vocabulary used for budget estimation. Defaults to llm.model.
	ModelID string `yaml:"model_id"`
	// Files maps Hugging Face model ids to local tokenizer.json files.
	Files map[string]string `yaml:"files"`
}

type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

type SummarizerConfig struct {
	TokenThreshold int    `yaml:"token_threshold"`
	MapConcurrency int    `yaml:"map_concurrency"`
	DefaultFormat  string `yaml:"default_format"`
}

type RetrievalConfig struct {
	TopK             int `yaml:"top_k"`
	EmbedConcurrency int `yaml:"embed_concurrency"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

// DownloaderConfig points at the yt-dlp binary used for .url inbox files.
type DownloaderConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type HistoryConfig struct {
	Backend   string        `yaml:"backend"`
	RedisAddr string        `yaml:"redis_addr"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// PipelineConfig controls the batch inbox. Questions are answered for every
// processed transcript and appended to its summary.
type PipelineConfig struct {
	Questions []string `yaml:"questions"`
}

func (c *Config) Validate() error {
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Provider != "openai" && c.LLM.Provider != "gemini" {
		return fmt.Errorf("llm.provider must be openai or gemini, got %q", c.LLM.Provider)
	}
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.LLM.Model == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "gpt-3.5-turbo"
		}
	}

	c.Embedding.Provider = strings.ToLower(c.Embedding.Provider)
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = c.LLM.Provider
	}
	if c.Embedding.Provider != "openai" && c.Embedding.Provider != "gemini" {
		return fmt.Errorf("embedding.provider must be openai or gemini, got %q", c.Embedding.Provider)
	}
	if len(c.Embedding.APIKeys) == 0 {
		c.Embedding.APIKeys = c.LLM.APIKeys
	}
	if c.Embedding.BaseURL == "" && c.Embedding.Provider == c.LLM.Provider {
		c.Embedding.BaseURL = c.LLM.BaseURL
	}
	if c.Embedding.Model == "" {
		if c.Embedding.Provider == "gemini" {
			c.Embedding.Model = "text-embedding-004"
		} else {
			c.Embedding.Model = "text-embedding-ada-002"
		}
	}

	if c.Tokenizer.ModelID == "" {
		c.Tokenizer.ModelID = c.LLM.Model
	}

	if c.Chunking.Size <= 0 {
		c.Chunking.Size = 1000
	}
	if c.Chunking.Overlap <= 0 || c.Chunking.Overlap >= c.Chunking.Size {
		c.Chunking.Overlap = 100
		if c.Chunking.Overlap >= c.Chunking.Size {
			c.Chunking.Overlap = c.Chunking.Size / 10
		}
	}

	if c.Summarizer.TokenThreshold <= 0 {
		c.Summarizer.TokenThreshold = 4000
	}
	if c.Summarizer.MapConcurrency <= 0 {
		c.Summarizer.MapConcurrency = 4
	}
	if c.Summarizer.DefaultFormat == "" {
		c.Summarizer.DefaultFormat = "bullet points"
	}
	if _, err := models.ParseOutputFormat(c.Summarizer.DefaultFormat); err != nil {
		return fmt.Errorf("summarizer.default_format: %w", err)
	}

	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 4
	}
	if c.Retrieval.EmbedConcurrency <= 0 {
		c.Retrieval.EmbedConcurrency = 4
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Downloader.BinaryPath == "" {
		c.Downloader.BinaryPath = "yt-dlp"
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 5 * time.Minute
	}

	c.History.Backend = strings.ToLower(c.History.Backend)
	switch c.History.Backend {
	case "", "memory":
		c.History.Backend = "memory"
	case "redis":
		if c.History.RedisAddr == "" {
			return fmt.Errorf("history.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("history.backend must be memory or redis, got %q", c.History.Backend)
	}
	if c.History.KeyPrefix == "" {
		c.History.KeyPrefix = "caption-qa:history"
	}

	return nil
}
