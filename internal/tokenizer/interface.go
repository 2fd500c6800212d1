package tokenizer

// Counter counts tokens the way a given model's tokenizer would.
type Counter interface {
	// CountTokens fails with an apperr.CodeUnsupportedModel error when modelID
	// has no known tokenizer.
	CountTokens(text, modelID string) (int, error)
}

// encoder is one loaded vocabulary.
type encoder interface {
	count(text string) (int, error)
}
