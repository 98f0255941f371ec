// Package http provides HTTP-based implementations of artex.Fetcher and
// artex.SitemapService for news sites that serve their articles as static
// HTML.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/artex"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 20 * time.Second

// DefaultUserAgent is sent with every request unless overridden. Several
// news sites answer unknown agents with a consent or bot wall.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// MaxPageSize caps the number of bytes read from a single response.
const MaxPageSize = 10 << 20

// Ensure Fetcher implements artex.Fetcher at compile time.
var _ artex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves article HTML using plain HTTP requests. It does not
// execute JavaScript. Responses are decoded to UTF-8 from the charset
// declared in headers or markup.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header. Defaults to DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. Its timeout is replaced by
// the fetcher's timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		*client = *f.client
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns ENOTFOUND for 404 and 410 responses and EINVALID for responses
// that are not HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", artex.Errorf(artex.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", artex.Errorf(artex.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", artex.Errorf(artex.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, MaxPageSize), contentType)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTML reports whether a Content-Type header names an HTML document.
// A missing header is accepted.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
