package tokenizer

import (
	"sync"

	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var loaderOnce sync.Once

type implCounter struct {
	mu     sync.Mutex
	files  map[string]string
	cache  map[string]encoder
	logger logger.Logger
}

// New creates a Counter. OpenAI model ids resolve through the embedded BPE
// ranks, gemini-* ids through the genai local tokenizer, and ids listed in
// cfg.Files load a Hugging Face tokenizer.json.
func New(cfg config.TokenizerConfig, log logger.Logger) Counter {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	files := make(map[string]string, len(cfg.Files))
	for id, path := range cfg.Files {
		files[id] = path
	}

	return &implCounter{
		files:  files,
		cache:  make(map[string]encoder),
		logger: log,
	}
}
