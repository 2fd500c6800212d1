package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

var directives = [...]string{
	models.FormatOneSentence:  "Respond in exactly one sentence.",
	models.FormatBulletPoints: "Respond as concise bullet points.",
	models.FormatShort:        "Respond in at most five sentences.",
	models.FormatLong:         "Respond as a multi-paragraph verbose summary.",
}

const preamble = `You are provided with a transcript of people having a conversation.
Write a summary that highlights the key points mentioned.
Do not respond with anything outside of the transcript. If the transcript does not contain enough information, say "I don't know".`

const directTemplate = preamble + `

Respond with the following format:
%s

Transcript:
%s`

const mapTemplate = preamble + `

Transcript:
%s`

const combineTemplate = preamble + `
The transcript below is given as ordered partial summaries of consecutive sections.

You must respond with your answer in the following format:
%s

Transcript:
%s`

func directPrompt(transcript string, format models.OutputFormat) string {
	return fmt.Sprintf(directTemplate, directives[format], transcript)
}

func mapPrompt(chunk string) string {
	return fmt.Sprintf(mapTemplate, chunk)
}

func combinePrompt(partials string, format models.OutputFormat) string {
	return fmt.Sprintf(combineTemplate, directives[format], partials)
}
