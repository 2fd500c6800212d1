package processor

import "context"

// Processor turns one transcript source (text, subtitle or audio file) into
// summary documents in the output folder.
type Processor interface {
	Process(ctx context.Context, path string) error
}
