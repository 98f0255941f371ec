package artex

import "context"

// TokenCounter counts tokens in text for a specific model.
// It sizes the prompt handed to the rewriting service.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
