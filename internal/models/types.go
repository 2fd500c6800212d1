package models

import (
	"fmt"
	"strings"
	"time"
)

// Chunk is a contiguous span of transcript text. Overlap is the number of
// leading runes repeated from the end of the previous chunk.
type Chunk struct {
	Text          string `json:"text"`
	SequenceIndex int    `json:"sequence_index"`
	Overlap       int    `json:"overlap"`
}

// OutputFormat selects the style directive applied to the final summary.
type OutputFormat int

const (
	FormatOneSentence OutputFormat = iota
	FormatBulletPoints
	FormatShort
	FormatLong
)

var formatNames = [...]string{
	FormatOneSentence:  "one sentence",
	FormatBulletPoints: "bullet points",
	FormatShort:        "short",
	FormatLong:         "long",
}

// Valid reports whether f is one of the known formats.
func (f OutputFormat) Valid() bool {
	return f >= FormatOneSentence && int(f) < len(formatNames)
}

func (f OutputFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
	return formatNames[f]
}

// ParseOutputFormat accepts the display labels ("bullet points") as well as
// their snake and upper case spellings ("bullet_points", "BULLET_POINTS").
func ParseOutputFormat(s string) (OutputFormat, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for i, name := range formatNames {
		if norm == name {
			return OutputFormat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown output format %q", s)
}

// SummaryRequest is the input of a summarization run.
type SummaryRequest struct {
	Documents []Chunk
	Format    OutputFormat
}

// Strategy is the summarization approach picked for a transcript.
type Strategy int

const (
	StrategyDirect Strategy = iota
	StrategyHierarchical
)

func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyHierarchical:
		return "hierarchical"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Summary is a finished summary with the strategy that produced it.
type Summary struct {
	Text     string
	Strategy Strategy
	Tokens   int
}

// QAExchange is one entry of a session's question log.
type QAExchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}
