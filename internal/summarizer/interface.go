package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

// Summarizer condenses a chunked transcript, choosing a single-pass or a
// map-then-combine strategy from the transcript's token count.
type Summarizer interface {
	Summarize(ctx context.Context, docs []models.Chunk, format models.OutputFormat) (string, error)
	// Report is Summarize plus the strategy and token count it used.
	Report(ctx context.Context, docs []models.Chunk, format models.OutputFormat) (models.Summary, error)
	// Plan reports the strategy Summarize would use and the token count it
	// is based on, without calling the model.
	Plan(ctx context.Context, docs []models.Chunk) (models.Strategy, int, error)
}
