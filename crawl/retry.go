package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/artex"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the linear backoff delays for fetch retries: 600ms, 1.2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{600 * time.Millisecond, 1200 * time.Millisecond}
}

// FetchWithRetry attempts to fetch a URL with linear backoff retry logic.
// It retries up to 2 times (3 total attempts) with delays of 600ms and 1.2s.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// Errors carrying EINVALID or ENOTFOUND are permanent and returned at once.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	switch artex.ErrorCode(err) {
	case artex.EINVALID, artex.ENOTFOUND:
		return false
	}
	return true
}
