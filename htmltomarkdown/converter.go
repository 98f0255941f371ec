package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/artex"
)

// Ensure Converter implements artex.Converter at compile time.
var _ artex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert article HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", artex.Errorf(artex.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}
	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
