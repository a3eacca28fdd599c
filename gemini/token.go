package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/anydocs"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ anydocs.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline with the local Gemini tokenizer, so
// import-time estimates and Ask context trimming need no API key.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. An unknown model is EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, anydocs.Errorf(anydocs.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose vocabulary is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens of text sent as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens with %s: %w", tc.model, err)
	}
	return int(result.TotalTokens), nil
}
