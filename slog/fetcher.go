// Package slog provides logging decorators for artex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingFetcher implements artex.Fetcher.
var _ artex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   artex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next artex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Successful fetches are logged at
// Info and failures at Warn.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"host", artex.HostOf(url),
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Warn("fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Info("fetch", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
