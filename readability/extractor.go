package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements artex.BodyExtractor at compile time.
var _ artex.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article body from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBody processes raw HTML and returns the main content as HTML.
func (e *Extractor) ExtractBody(rawHTML, sourceURL string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", artex.Errorf(artex.EINVALID, "empty HTML input")
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", artex.Errorf(artex.EINVALID, "invalid source URL %q", sourceURL)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return "", err
	}
	return article.Content, nil
}
