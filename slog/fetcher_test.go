package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/artex/mock"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	const pageURL = "https://www.lance.com.br/futebol/gol.html"

	t.Run("logs size and host of fetched page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := artexslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>gol</html>", nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		html, err := fetcher.Fetch(context.Background(), pageURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>gol</html>", html)
		out := buf.String()
		assert.Contains(t, out, "level=INFO msg=fetch")
		assert.Contains(t, out, "url="+pageURL)
		assert.Contains(t, out, "host=lance.com.br")
		assert.Contains(t, out, "bytes=16")
		assert.NotContains(t, out, "err=")
	})

	t.Run("warns on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := artexslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", errors.New("status 503")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := fetcher.Fetch(context.Background(), pageURL)

		require.EqualError(t, err, "status 503")
		out := buf.String()
		assert.Contains(t, out, "level=WARN msg=fetch")
		assert.Contains(t, out, `err="status 503"`)
		assert.NotContains(t, out, "bytes=")
	})

	t.Run("close delegates to wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		fetcher := artexslog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}
