package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of content as 16 lowercase hex digits. It
// fingerprints article bodies so that re-published copies can be recognized.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for progress output. The scheme and a leading
// "www." are dropped first; if the rest is still longer than maxLen its tail
// is kept, since news slugs sit at the end of the path.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	short := url
	if _, rest, ok := strings.Cut(short, "://"); ok {
		short = strings.TrimPrefix(rest, "www.")
	}
	switch {
	case len(short) <= maxLen:
		return short
	case maxLen < 4:
		return short[:maxLen]
	}
	return "..." + short[len(short)-maxLen+3:]
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	}
	return fmt.Sprintf("%d B", bytes)
}

// FormatResult renders a one-line harvest summary.
func FormatResult(r *Result) string {
	s := fmt.Sprintf("Saved %d articles (%s, %s)", r.Saved, FormatBytes(r.Bytes), FormatTokens(r.Tokens))
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %d already stored", r.Skipped)
	}
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	return s
}
