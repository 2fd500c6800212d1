package index

import (
	"context"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

// Builder embeds a transcript's chunks into a fresh Index.
type Builder interface {
	// Build is all or nothing: any embedding failure returns an
	// apperr.CodeEmbeddingService error and no index.
	Build(ctx context.Context, chunks []models.Chunk) (Index, error)
}

// Index is a write-once similarity index over one transcript.
type Index interface {
	// Retrieve returns at most k chunks ranked by cosine similarity to query.
	Retrieve(ctx context.Context, query string, k int) ([]models.Chunk, error)
	Len() int
}
