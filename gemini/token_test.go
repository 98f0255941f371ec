package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
	require.NoError(t, err)

	var _ artex.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "O Flamengo venceu o clássico no Maracanã.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("counts the rendered prompt of an article", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		article := &artex.Article{
			SourceURL:   "https://ge.globo.com/futebol/1.ghtml",
			Title:       "Flamengo vence",
			ContentHTML: "<p>O Flamengo venceu o clássico no Maracanã.</p>",
		}

		body, err := tc.CountTokens(ctx, article.ContentHTML)
		require.NoError(t, err)

		prompt, err := tc.CountArticle(ctx, article)
		require.NoError(t, err)

		assert.Greater(t, prompt, body)
	})
}
