package qa

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
)

func (p *implPipeline) Answer(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperr.New(apperr.CodeValidation, "question is empty")
	}
	if n := utf8.RuneCountInString(question); n > MaxQuestionLength {
		return "", apperr.Newf(apperr.CodeValidation, "question has %d characters, limit is %d", n, MaxQuestionLength)
	}

	chunks, err := p.index.Retrieve(ctx, question, p.topK)
	if err != nil {
		p.logger.Error(ctx, "Retrieval failed: %v", err)
		return "", apperr.Wrap(err, apperr.CodeQA, "retrieve context")
	}
	p.logger.Debug(ctx, "Retrieved %d chunks for question", len(chunks))

	prompt := buildPrompt(formatContext(chunks), question)

	raw, err := p.llm.Complete(ctx, prompt, 0)
	if err != nil {
		p.logger.Error(ctx, "Answer generation failed: %v", err)
		return "", apperr.Wrap(err, apperr.CodeQA, "generate answer")
	}

	return parseAnswer(raw), nil
}
