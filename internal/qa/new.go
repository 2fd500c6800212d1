package qa

import (
	"github.com/nguyentantai21042004/caption-qa/internal/index"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
)

const (
	DefaultTopK = 4
	// MaxQuestionLength bounds a question in runes.
	MaxQuestionLength = 200
)

type implPipeline struct {
	index  index.Index
	llm    llm.Completer
	topK   int
	logger logger.Logger
}

// New creates a Pipeline retrieving topK chunks from idx per question.
func New(idx index.Index, completer llm.Completer, topK int, log logger.Logger) Pipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &implPipeline{
		index:  idx,
		llm:    completer,
		topK:   topK,
		logger: log,
	}
}
