package mock

import (
	"context"

	"github.com/fwojciec/anydocs"
)

// Compile-time interface verification.
var (
	_ anydocs.Asker        = (*Asker)(nil)
	_ anydocs.TokenCounter = (*TokenCounter)(nil)
)

// Asker is a mock implementation of anydocs.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}

// TokenCounter is a mock implementation of anydocs.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
