package chunker

import "github.com/nguyentantai21042004/caption-qa/internal/models"

// Chunker splits transcript text into ordered, overlapping chunks.
type Chunker interface {
	Split(text string) []models.Chunk
}
