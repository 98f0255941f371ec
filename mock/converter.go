package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var (
	_ artex.Converter    = (*Converter)(nil)
	_ artex.TokenCounter = (*TokenCounter)(nil)
)

// Converter is a mock implementation of artex.Converter.
type Converter struct {
	ConvertFn func(html, baseURL string) (string, error)
}

func (c *Converter) Convert(html, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}

// TokenCounter is a mock implementation of artex.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
