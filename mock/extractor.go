package mock

import "github.com/fwojciec/artex"

var (
	_ artex.Extractor     = (*Extractor)(nil)
	_ artex.BodyExtractor = (*BodyExtractor)(nil)
)

// Extractor is a mock implementation of artex.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML, sourceURL string) (*artex.Article, error)
}

func (e *Extractor) Extract(rawHTML, sourceURL string) (*artex.Article, error) {
	return e.ExtractFn(rawHTML, sourceURL)
}

// BodyExtractor is a mock implementation of artex.BodyExtractor.
type BodyExtractor struct {
	ExtractBodyFn func(rawHTML, sourceURL string) (string, error)
}

func (e *BodyExtractor) ExtractBody(rawHTML, sourceURL string) (string, error) {
	return e.ExtractBodyFn(rawHTML, sourceURL)
}
