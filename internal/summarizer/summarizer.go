package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/chunker"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"golang.org/x/sync/errgroup"
)

// temperature is fixed so repeated runs over the same transcript agree.
const temperature = 0

// SelectStrategy picks DIRECT below threshold and HIERARCHICAL at or above it.
func SelectStrategy(tokens, threshold int) models.Strategy {
	if tokens < threshold {
		return models.StrategyDirect
	}
	return models.StrategyHierarchical
}

type summaryPlan struct {
	strategy   models.Strategy
	tokens     int
	docs       []models.Chunk
	transcript string
}

func (s *implSummarizer) Plan(ctx context.Context, docs []models.Chunk) (models.Strategy, int, error) {
	p, err := s.plan(docs)
	if err != nil {
		return 0, 0, err
	}
	return p.strategy, p.tokens, nil
}

func (s *implSummarizer) plan(docs []models.Chunk) (summaryPlan, error) {
	if len(docs) == 0 {
		return summaryPlan{}, apperr.New(apperr.CodeValidation, "no documents to summarize")
	}

	ordered := make([]models.Chunk, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceIndex < ordered[j].SequenceIndex
	})

	transcript := chunker.Join(ordered)
	tokens, err := s.counter.CountTokens(transcript, s.modelID)
	if err != nil {
		return summaryPlan{}, err
	}

	return summaryPlan{
		strategy:   SelectStrategy(tokens, s.threshold),
		tokens:     tokens,
		docs:       ordered,
		transcript: transcript,
	}, nil
}

func (s *implSummarizer) Summarize(ctx context.Context, docs []models.Chunk, format models.OutputFormat) (string, error) {
	out, err := s.Report(ctx, docs, format)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

func (s *implSummarizer) Report(ctx context.Context, docs []models.Chunk, format models.OutputFormat) (models.Summary, error) {
	if !format.Valid() {
		return models.Summary{}, apperr.Newf(apperr.CodeValidation, "unknown output format %d", int(format))
	}

	p, err := s.plan(docs)
	if err != nil {
		return models.Summary{}, err
	}

	s.logger.Info(ctx, "Summarizing %d chunks: %d tokens, threshold %d, strategy %s, format %s",
		len(p.docs), p.tokens, s.threshold, p.strategy, format)

	var summary string
	switch p.strategy {
	case models.StrategyDirect:
		summary, err = s.llm.Complete(ctx, directPrompt(p.transcript, format), temperature)
	default:
		summary, err = s.hierarchical(ctx, p.docs, format)
	}
	if err != nil {
		s.logger.Error(ctx, "Summarization failed: %v", err)
		return models.Summary{}, apperr.Wrapf(err, apperr.CodeSummarization, "%s summarization", p.strategy)
	}

	return models.Summary{
		Text:     strings.TrimSpace(summary),
		Strategy: p.strategy,
		Tokens:   p.tokens,
	}, nil
}

// hierarchical summarizes every chunk concurrently, then combines the
// partial summaries in chunk order.
func (s *implSummarizer) hierarchical(ctx context.Context, docs []models.Chunk, format models.OutputFormat) (string, error) {
	partials := make([]string, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range docs {
		g.Go(func() error {
			out, err := s.llm.Complete(gctx, mapPrompt(docs[i].Text), temperature)
			if err != nil {
				return fmt.Errorf("map chunk %d: %w", docs[i].SequenceIndex, err)
			}
			partials[i] = strings.TrimSpace(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "Map phase produced %d partial summaries", len(partials))

	out, err := s.llm.Complete(ctx, combinePrompt(strings.Join(partials, "\n\n"), format), temperature)
	if err != nil {
		return "", fmt.Errorf("combine: %w", err)
	}
	return out, nil
}
