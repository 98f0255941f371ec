package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	artexhttp "github.com/fwojciec/artex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Olá</body></html>"))
		}))
		defer server.Close()

		fetcher := artexhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Olá</body></html>", html)
	})

	t.Run("decodes legacy charsets to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>S\xe3o Paulo</p>"))
		}))
		defer server.Close()

		html, err := artexhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>São Paulo</p>", html)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>x</p>"))
		}))
		defer server.Close()

		_, err := artexhttp.NewFetcher(artexhttp.WithUserAgent("artex-test/1.0")).Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "artex-test/1.0", got)
	})

	t.Run("sends a browser user agent by default", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<p>x</p>"))
		}))
		defer server.Close()

		_, err := artexhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, artexhttp.DefaultUserAgent, got)
	})

	t.Run("rejects non-HTML responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		_, err := artexhttp.NewFetcher().Fetch(context.Background(), server.URL)

		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := artexhttp.NewFetcher(artexhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := artexhttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for missing pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := artexhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, artex.ENOTFOUND, artex.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns error for other non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := artexhttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}
