package chunker

import "github.com/nguyentantai21042004/caption-qa/internal/config"

const (
	DefaultSize    = 1000
	DefaultOverlap = 100
)

// DefaultSeparators are tried in order: paragraph break, line break, sentence end.
var DefaultSeparators = []string{"\n\n", "\n", "."}

type implChunker struct {
	size       int
	overlap    int
	separators []string
}

// New creates a Chunker from the chunking config. Sizes are measured in runes.
// A zero Size or Overlap takes the default.
func New(cfg config.ChunkingConfig) Chunker {
	size, overlap := cfg.Size, cfg.Overlap
	if size <= 0 {
		size = DefaultSize
	}
	if overlap <= 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	return &implChunker{
		size:       size,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}
