package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/pkg/llm"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	chunk  models.Chunk
	vector []float32
	norm   float64
}

type memIndex struct {
	embedder llm.Embedder
	entries  []entry
	dim      int
}

type scored struct {
	entry *entry
	score float64
}

func (b *implBuilder) Build(ctx context.Context, chunks []models.Chunk) (Index, error) {
	seen := make(map[int]struct{}, len(chunks))
	for _, ch := range chunks {
		if _, dup := seen[ch.SequenceIndex]; dup {
			return nil, apperr.Newf(apperr.CodeValidation, "duplicate chunk sequence index %d", ch.SequenceIndex)
		}
		seen[ch.SequenceIndex] = struct{}{}
	}

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range chunks {
		g.Go(func() error {
			vec, err := b.embedder.Embed(gctx, chunks[i].Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", chunks[i].SequenceIndex, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.logger.Error(ctx, "Index build failed: %v", err)
		return nil, apperr.Wrap(err, apperr.CodeEmbeddingService, "build index")
	}

	idx := &memIndex{
		embedder: b.embedder,
		entries:  make([]entry, len(chunks)),
	}
	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, apperr.Newf(apperr.CodeEmbeddingService, "empty vector for chunk %d", chunks[i].SequenceIndex)
		}
		if idx.dim == 0 {
			idx.dim = len(vec)
		} else if len(vec) != idx.dim {
			return nil, apperr.Newf(apperr.CodeEmbeddingService,
				"chunk %d has dimension %d, want %d", chunks[i].SequenceIndex, len(vec), idx.dim)
		}
		idx.entries[i] = entry{chunk: chunks[i], vector: vec, norm: norm(vec)}
	}

	b.logger.Info(ctx, "Indexed %d chunks (dim=%d)", len(idx.entries), idx.dim)
	return idx, nil
}

func (x *memIndex) Len() int {
	return len(x.entries)
}

func (x *memIndex) Retrieve(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	if k <= 0 {
		return nil, apperr.Newf(apperr.CodeValidation, "k must be positive, got %d", k)
	}
	if len(x.entries) == 0 {
		return []models.Chunk{}, nil
	}

	qv, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeEmbeddingService, "embed query")
	}
	if len(qv) != x.dim {
		return nil, apperr.Newf(apperr.CodeEmbeddingService, "query has dimension %d, want %d", len(qv), x.dim)
	}
	qn := norm(qv)

	ranked := make([]scored, len(x.entries))
	for i := range x.entries {
		ranked[i] = scored{entry: &x.entries[i], score: cosine(qv, qn, x.entries[i].vector, x.entries[i].norm)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.chunk.SequenceIndex < ranked[j].entry.chunk.SequenceIndex
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]models.Chunk, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].entry.chunk
	}
	return out, nil
}

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

// cosine returns 0 when either vector has zero magnitude.
func cosine(a []float32, an float64, b []float32, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (an * bn)
}
