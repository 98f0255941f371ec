package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements artex.BodyExtractor at compile time.
var _ artex.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the article body from HTML.
// Links are kept; images, comments, and tables are left to the caller.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBody processes raw HTML and returns the main content as HTML.
// Returns an empty string without error when no body was found.
func (e *Extractor) ExtractBody(rawHTML, sourceURL string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", artex.Errorf(artex.EINVALID, "empty HTML input")
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", artex.Errorf(artex.EINVALID, "invalid source URL %q", sourceURL)
	}

	opts := trafilatura.Options{
		OriginalURL:     u,
		EnableFallback:  true,
		IncludeLinks:    true,
		ExcludeComments: true,
		ExcludeTables:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}
	if result == nil || result.ContentNode == nil {
		return "", nil
	}
	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
