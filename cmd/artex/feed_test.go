package main_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/mock"
	"github.com/fwojciec/artex/rss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCmd_Run(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	t.Run("encodes listing links as rss", func(t *testing.T) {
		t.Parallel()

		var gotSelectors []string
		var gotLimit int
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Now:    now,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html>listing</html>", nil
				},
			},
			Listings: &mock.ListingExtractor{
				ExtractLinksFn: func(html, listURL string, selectors []string, limit int) ([]artex.ListingLink, error) {
					gotSelectors = selectors
					gotLimit = limit
					return []artex.ListingLink{
						{Title: "Gol no fim", URL: "https://lance.com.br/futebol/gol.html", Source: "jsonld"},
					}, nil
				},
			},
			Feeds: rss.NewEncoder(),
		}

		cmd := &main.FeedCmd{URL: "https://lance.com.br/futebol", Selector: []string{"h2 a"}, Limit: 30}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"h2 a"}, gotSelectors)
		assert.Equal(t, 30, gotLimit)
		out := stdout.String()
		assert.Contains(t, out, `<rss version="2.0"`)
		assert.Contains(t, out, "Gol no fim")
		assert.Contains(t, out, "https://lance.com.br/futebol/gol.html")
		assert.Contains(t, out, "Wed, 01 May 2024 10:00:00 +0000")
	})

	t.Run("reports empty listing", func(t *testing.T) {
		t.Parallel()

		encoded := false
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Now:    now,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Listings: &mock.ListingExtractor{
				ExtractLinksFn: func(html, listURL string, selectors []string, limit int) ([]artex.ListingLink, error) {
					return nil, nil
				},
			},
			Feeds: &mock.FeedEncoder{
				EncodeFeedFn: func(w io.Writer, feed *artex.Feed) error {
					encoded = true
					return nil
				},
			},
		}

		err := (&main.FeedCmd{URL: "https://example.com/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, artex.ENOTFOUND, artex.ErrorCode(err))
		assert.False(t, encoded)
		assert.Contains(t, stderr.String(), "no article links found")
	})
}
