package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{600 * time.Millisecond, 1200 * time.Millisecond}, crawl.DefaultRetryDelays())
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{0, 0}

	t.Run("returns first successful response", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		}, nil, delays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after all attempts and returns last error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", func(_ context.Context, _ string) (string, error) {
			calls++
			return "", fmt.Errorf("attempt %d", calls)
		}, nil, delays)

		require.EqualError(t, err, "attempt 3")
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", func(_ context.Context, _ string) (string, error) {
			calls++
			return "", artex.Errorf(artex.ENOTFOUND, "HTTP 404")
		}, nil, delays)

		assert.Equal(t, artex.ENOTFOUND, artex.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var logged []string
		_, _ = crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", func(_ context.Context, _ string) (string, error) {
			return "", errors.New("timeout")
		}, func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}, delays)

		assert.Equal(t, []string{
			"  retry https://example.com/a (attempt 2): timeout",
			"  retry https://example.com/a (attempt 3): timeout",
		}, logged)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/a", func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("timeout")
		}, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
