package chunker

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/caption-qa/internal/models"
)

// Split cuts text into chunks of at most size runes. Each chunk after the
// first starts with the trailing overlap runes of its predecessor, so the
// chunks are exact substrings of text and Join reverses Split.
func (c *implChunker) Split(text string) []models.Chunk {
	if text == "" {
		return []models.Chunk{}
	}

	pieces := c.splitRecursive(text, c.separators)
	return c.merge(pieces)
}

// splitRecursive breaks text into pieces no longer than size-overlap, so any
// piece still fits in a chunk after the overlap prefix. Concatenating the
// result yields text.
func (c *implChunker) splitRecursive(text string, separators []string) []string {
	limit := c.size - c.overlap
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	for i, sep := range separators {
		parts := splitKeep(text, sep)
		if len(parts) < 2 {
			continue
		}

		var out []string
		for _, p := range parts {
			if utf8.RuneCountInString(p) <= limit {
				out = append(out, p)
				continue
			}
			out = append(out, c.splitRecursive(p, separators[i+1:])...)
		}
		return out
	}

	return sliceRunes(text, limit)
}

// merge packs pieces greedily into chunks, carrying the overlap tail forward.
func (c *implChunker) merge(pieces []string) []models.Chunk {
	var (
		chunks  []models.Chunk
		cur     strings.Builder
		curLen  int
		overlap int
	)

	flush := func() {
		text := cur.String()
		chunks = append(chunks, models.Chunk{
			Text:          text,
			SequenceIndex: len(chunks),
			Overlap:       overlap,
		})

		overlap = min(c.overlap, curLen)
		tail := lastRunes(text, overlap)
		cur.Reset()
		cur.WriteString(tail)
		curLen = overlap
	}

	for _, p := range pieces {
		n := utf8.RuneCountInString(p)
		if curLen > overlap && curLen+n > c.size {
			flush()
		}
		cur.WriteString(p)
		curLen += n
	}
	if curLen > overlap {
		flush()
	}

	return chunks
}

// Join rebuilds the original text from chunks by dropping each chunk's
// overlap prefix. Chunks are ordered by SequenceIndex first.
func Join(chunks []models.Chunk) string {
	ordered := make([]models.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceIndex < ordered[j].SequenceIndex
	})

	var b strings.Builder
	for _, ch := range ordered {
		r := []rune(ch.Text)
		skip := min(max(ch.Overlap, 0), len(r))
		b.WriteString(string(r[skip:]))
	}
	return b.String()
}

// splitKeep splits on sep and leaves sep attached to the end of each piece.
func splitKeep(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

func sliceRunes(text string, n int) []string {
	r := []rune(text)
	out := make([]string, 0, len(r)/n+1)
	for start := 0; start < len(r); start += n {
		end := min(start+n, len(r))
		out = append(out, string(r[start:end]))
	}
	return out
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(text)
	if n >= len(r) {
		return text
	}
	return string(r[len(r)-n:])
}
