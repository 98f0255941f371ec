package artex

import (
	"encoding/json"
	"strings"
)

// FormatPrompt renders the article as the labeled text block handed to the
// rewriting service. Empty lists and a missing schema render as "None".
func FormatPrompt(a *Article) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			value = "None"
		}
		b.WriteString("## ")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(value)
		b.WriteString("\n\n")
	}

	field("Original title", a.Title)
	field("Original URL", a.SourceURL)
	field("Source", a.Host())
	field("Excerpt", a.Excerpt)

	schema := ""
	if len(a.Schema) > 0 {
		if data, err := json.MarshalIndent(a.Schema, "", "  "); err == nil {
			schema = string(data)
		}
	}
	field("Original schema", schema)

	embeds := make([]string, 0, len(a.Videos))
	for _, v := range a.Videos {
		embeds = append(embeds, v.EmbedURL)
	}
	field("Videos", strings.Join(embeds, "\n"))

	images := a.Images
	if a.FeaturedImageURL != "" {
		images = append([]string{a.FeaturedImageURL}, images...)
	}
	field("Images", strings.Join(images, "\n"))

	b.WriteString("## Content\n")
	b.WriteString(a.ContentHTML)
	return b.String()
}

// FormatArticles formats a list of articles for display, one per line.
// Uses title if available, falls back to source URL.
func FormatArticles(articles []*Article) string {
	if len(articles) == 0 {
		return ""
	}

	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		header := a.Title
		if header == "" {
			header = a.SourceURL
		}
		lines = append(lines, a.ID+"  "+a.ExtractedAt.Format("2006-01-02")+"  "+header)
	}
	return strings.Join(lines, "\n")
}
