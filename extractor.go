package artex

// Extractor turns one raw news page into a structured Article.
// Implementations are stateless: the same input always yields the same
// article, and nothing is retained between calls.
type Extractor interface {
	// Extract parses rawHTML, fetched from sourceURL, and returns the article.
	// sourceURL selects site-specific rules and resolves relative links.
	// Returns ENOTFOUND when no article body could be located.
	Extract(rawHTML, sourceURL string) (*Article, error)
}

// BodyExtractor is a general-purpose main-content extractor used by the
// generic path when no site rule applies.
type BodyExtractor interface {
	// ExtractBody returns the main content of rawHTML as clean HTML with
	// links preserved. An empty string means no body was found.
	ExtractBody(rawHTML, sourceURL string) (string, error)
}
