package qa

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

const answerTemplate = `Answer the question based only on the following context.
If you don't know the answer, just say you don't know. Do NOT try to make up an answer.
If the question is not related to the context, politely respond that you are tuned to only answer questions that are related to the context.
Use as much detail as possible when responding.

Context:

%s

Question: %s`

// formatContext joins chunk texts in rank order.
func formatContext(chunks []models.Chunk) string {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	return strings.Join(texts, "\n\n")
}

func buildPrompt(context, question string) string {
	return fmt.Sprintf(answerTemplate, context, question)
}

func parseAnswer(raw string) string {
	return strings.TrimSpace(raw)
}
