package artex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms article HTML into Markdown. Relative links and
	// images are resolved against baseURL when it is not empty.
	Convert(html, baseURL string) (string, error)
}
