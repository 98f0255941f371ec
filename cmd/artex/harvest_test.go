package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/artex"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/crawl"
	"github.com/fwojciec/artex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("harvests new articles and prints summary", func(t *testing.T) {
		t.Parallel()

		var gotFilter *artex.URLFilter
		harvester := &crawl.Harvester{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, baseURL string, filter *artex.URLFilter) ([]string, error) {
					gotFilter = filter
					return []string{
						"https://ge.globo.com/futebol/noticia/a.ghtml",
						"https://ge.globo.com/futebol/noticia/b.ghtml",
					}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(rawHTML, sourceURL string) (*artex.Article, error) {
					return &artex.Article{SourceURL: sourceURL, ContentHTML: "<p>texto</p>"}, nil
				},
			},
			Articles: &mock.ArticleService{
				FindArticlesFn: func(_ context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
					return nil, nil
				},
				CreateArticleFn: func(_ context.Context, a *artex.Article) error {
					return nil
				},
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Harvester: harvester,
		}

		cmd := &main.HarvestCmd{URL: "https://ge.globo.com/", Filter: []string{"/noticia/"}, Concurrency: 2}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter)
		require.Len(t, gotFilter.Include, 1)
		assert.Equal(t, "/noticia/", gotFilter.Include[0].String())
		assert.Equal(t, 2, harvester.Concurrency)
		assert.Contains(t, stdout.String(), "Found 2 new articles")
		assert.Contains(t, stdout.String(), "Saved 2 articles")
	})

	t.Run("rejects invalid filter pattern", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Harvester: &crawl.Harvester{},
		}

		cmd := &main.HarvestCmd{URL: "https://ge.globo.com/", Filter: []string{"[unclosed"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports discovery failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Harvester: &crawl.Harvester{
				Sitemaps: &mock.SitemapService{
					DiscoverURLsFn: func(_ context.Context, baseURL string, filter *artex.URLFilter) ([]string, error) {
						return nil, errors.New("robots.txt unreachable")
					},
				},
			},
		}

		cmd := &main.HarvestCmd{URL: "https://ge.globo.com/"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "robots.txt unreachable")
	})
}
