package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists articles newest first", func(t *testing.T) {
		t.Parallel()

		var gotFilter artex.ArticleFilter
		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
				gotFilter = filter
				return []*artex.Article{
					{ID: "a2", Title: "Segundo", ExtractedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
					{ID: "a1", SourceURL: "https://lance.com.br/x.html", ExtractedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		cmd := &main.ListCmd{Host: "lance.com.br", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.Host)
		assert.Equal(t, "lance.com.br", *gotFilter.Host)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Equal(t, "a2  2024-05-02  Segundo\na1  2024-05-01  https://lance.com.br/x.html\n", stdout.String())
	})

	t.Run("omits host filter when unset", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
				assert.Nil(t, filter.Host)
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No articles found")
	})

	t.Run("reports store failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Articles: &mock.ArticleService{
				FindArticlesFn: func(_ context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
					return nil, artex.Errorf(artex.EINTERNAL, "database locked")
				},
			},
		}

		require.Error(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stderr.String(), "error: database locked")
	})
}
