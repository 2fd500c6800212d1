package config

import (
	"os"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "openai",
			APIKeys:  []string{"sk-test"},
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing api keys",
			mutate:  func(c *Config) { c.LLM.APIKeys = nil },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "anthropic" },
			wantErr: true,
		},
		{
			name:    "missing paths",
			mutate:  func(c *Config) { c.Paths = PathsConfig{} },
			wantErr: true,
		},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.History.Backend = "redis" },
			wantErr: true,
		},
		{
			name: "redis with address",
			mutate: func(c *Config) {
				c.History.Backend = "Redis"
				c.History.RedisAddr = "localhost:6379"
			},
			wantErr: false,
		},
		{
			name:    "unknown default format",
			mutate:  func(c *Config) { c.Summarizer.DefaultFormat = "haiku" },
			wantErr: true,
		},
		{
			name:    "unknown history backend",
			mutate:  func(c *Config) { c.History.Backend = "sqlite" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Tokenizer.ModelID != cfg.LLM.Model {
		t.Errorf("Tokenizer.ModelID = %q, want %q", cfg.Tokenizer.ModelID, cfg.LLM.Model)
	}
	if cfg.Embedding.Provider != "openai" || cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("Embedding = %+v", cfg.Embedding)
	}
	if len(cfg.Embedding.APIKeys) != 1 {
		t.Errorf("Embedding.APIKeys should inherit llm keys, got %v", cfg.Embedding.APIKeys)
	}
	if cfg.Chunking.Size != 1000 || cfg.Chunking.Overlap != 100 {
		t.Errorf("Chunking = %+v", cfg.Chunking)
	}
	if cfg.Summarizer.TokenThreshold != 4000 {
		t.Errorf("TokenThreshold = %d", cfg.Summarizer.TokenThreshold)
	}
	if cfg.Retrieval.TopK != 4 {
		t.Errorf("TopK = %d", cfg.Retrieval.TopK)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("History.Backend = %q", cfg.History.Backend)
	}
	if cfg.Downloader.BinaryPath != "yt-dlp" {
		t.Errorf("Downloader.BinaryPath = %q", cfg.Downloader.BinaryPath)
	}
}

func TestValidateGeminiDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Provider = "Gemini"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Embedding.Model != "text-embedding-004" {
		t.Errorf("Embedding.Model = %q", cfg.Embedding.Model)
	}
}

func TestValidateChunkingDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   ChunkingConfig
		want ChunkingConfig
	}{
		{"unset", ChunkingConfig{}, ChunkingConfig{Size: 1000, Overlap: 100}},
		{"size only", ChunkingConfig{Size: 800}, ChunkingConfig{Size: 800, Overlap: 100}},
		{"overlap too large", ChunkingConfig{Size: 500, Overlap: 800}, ChunkingConfig{Size: 500, Overlap: 100}},
		{"small size", ChunkingConfig{Size: 50}, ChunkingConfig{Size: 50, Overlap: 5}},
		{"explicit", ChunkingConfig{Size: 1200, Overlap: 150}, ChunkingConfig{Size: 1200, Overlap: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Chunking = tt.in
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if cfg.Chunking != tt.want {
				t.Errorf("Chunking = %+v, want %+v", cfg.Chunking, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("CAPTION_QA_TEST_KEY", "sk-from-env")

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
llm:
  provider: "openai"
  model: "gpt-4o-mini"
  api_keys:
    - "${CAPTION_QA_TEST_KEY}"
    - "${CAPTION_QA_UNSET_KEY}"

summarizer:
  token_threshold: 3000

paths:
  input: "data/input"
  output: "data/output"

server:
  request_timeout: "90s"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.LLM.APIKeys) != 1 || cfg.LLM.APIKeys[0] != "sk-from-env" {
		t.Errorf("APIKeys = %v, want [sk-from-env]", cfg.LLM.APIKeys)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("Model = %v, want gpt-4o-mini", cfg.LLM.Model)
	}
	if cfg.Summarizer.TokenThreshold != 3000 {
		t.Errorf("TokenThreshold = %d, want 3000", cfg.Summarizer.TokenThreshold)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want 90s", cfg.Server.RequestTimeout)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
