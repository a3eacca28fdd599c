package anydocs

import "context"

// Asker provides natural language question answering over the active
// documentation index.
type Asker interface {
	// Ask answers a question using the most relevant documentation sections.
	// Returns ENOTFOUND if no section matches the question.
	Ask(ctx context.Context, question string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
