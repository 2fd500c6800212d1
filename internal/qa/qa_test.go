package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

type fakeIndex struct {
	chunks []models.Chunk
	err    error
	gotK   int
	calls  int
}

func (f *fakeIndex) Retrieve(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	f.calls++
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	if k < len(f.chunks) {
		return f.chunks[:k], nil
	}
	return f.chunks, nil
}

func (f *fakeIndex) Len() int { return len(f.chunks) }

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
	temp   float32
	calls  int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.calls++
	f.prompt = prompt
	f.temp = temperature
	return f.reply, f.err
}

func rankedChunks() []models.Chunk {
	return []models.Chunk{
		{Text: "The launch moved to March.", SequenceIndex: 4},
		{Text: "Marketing needs two more weeks.", SequenceIndex: 1},
		{Text: "QA signed off on Friday.", SequenceIndex: 7},
	}
}

func TestAnswer(t *testing.T) {
	idx := &fakeIndex{chunks: rankedChunks()}
	llm := &fakeCompleter{reply: "  The launch moved to March.\n"}
	p := New(idx, llm, 2, logger.NewNop())

	got, err := p.Answer(context.Background(), "When is the launch?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != "The launch moved to March." {
		t.Errorf("Answer() = %q", got)
	}
	if idx.gotK != 2 {
		t.Errorf("Retrieve k = %d, want 2", idx.gotK)
	}
	if llm.temp != 0 {
		t.Errorf("temperature = %v, want 0", llm.temp)
	}

	wantContext := "Context:\n\nThe launch moved to March.\n\nMarketing needs two more weeks.\n\nQuestion: When is the launch?"
	if !strings.Contains(llm.prompt, wantContext) {
		t.Errorf("prompt does not carry the ranked context and question:\n%s", llm.prompt)
	}
	if strings.Contains(llm.prompt, "QA signed off") {
		t.Error("prompt should only include the top k chunks")
	}
}

func TestAnswerUnrelatedQuestion(t *testing.T) {
	decline := "I'm tuned to only answer questions that are related to the context."
	llm := &fakeCompleter{reply: decline}
	p := New(&fakeIndex{chunks: rankedChunks()}, llm, 4, logger.NewNop())

	got, err := p.Answer(context.Background(), "What's the capital of France?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != decline {
		t.Errorf("Answer() = %q, want the decline verbatim", got)
	}
	if !strings.Contains(llm.prompt, "politely respond") || !strings.Contains(llm.prompt, "just say you don't know") {
		t.Error("prompt should instruct the model to decline unrelated questions")
	}
}

func TestAnswerErrors(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		idx       *fakeIndex
		llm       *fakeCompleter
		wantCode  apperr.Code
		wantCalls int
	}{
		{
			name:     "empty question",
			question: "   ",
			idx:      &fakeIndex{chunks: rankedChunks()},
			llm:      &fakeCompleter{},
			wantCode: apperr.CodeValidation,
		},
		{
			name:     "question too long",
			question: strings.Repeat("why ", 60),
			idx:      &fakeIndex{chunks: rankedChunks()},
			llm:      &fakeCompleter{},
			wantCode: apperr.CodeValidation,
		},
		{
			name:     "retrieval fails",
			question: "When?",
			idx:      &fakeIndex{err: apperr.Wrap(errors.New("timeout"), apperr.CodeEmbeddingService, "embed query")},
			llm:      &fakeCompleter{},
			wantCode: apperr.CodeQA,
		},
		{
			name:      "completion fails",
			question:  "When?",
			idx:       &fakeIndex{chunks: rankedChunks()},
			llm:       &fakeCompleter{err: errors.New("503")},
			wantCode:  apperr.CodeQA,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.idx, tt.llm, 4, logger.NewNop()).Answer(context.Background(), tt.question)
			if !apperr.IsCode(err, tt.wantCode) {
				t.Errorf("Answer() error = %v, want %s", err, tt.wantCode)
			}
			if tt.llm.calls != tt.wantCalls {
				t.Errorf("LLM calls = %d, want %d", tt.llm.calls, tt.wantCalls)
			}
		})
	}
}

func TestFormatContext(t *testing.T) {
	if got := formatContext(nil); got != "" {
		t.Errorf("formatContext(nil) = %q", got)
	}
	got := formatContext(rankedChunks()[:2])
	if got != "The launch moved to March.\n\nMarketing needs two more weeks." {
		t.Errorf("formatContext() = %q", got)
	}
}
