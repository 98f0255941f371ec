// Package fs exports articles as Markdown files with YAML frontmatter.
package fs

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/artex"
	"gopkg.in/yaml.v3"
)

// DefaultMergeLimit caps the gallery images folded into an exported body.
const DefaultMergeLimit = 6

// pageExtensions are stripped from the last path segment before ".md" is added.
var pageExtensions = []string{".ghtml", ".shtml", ".html", ".htm", ".php"}

// URLToPath converts an article URL to a relative file path rooted at its host.
// Example: https://www.lance.com.br/futebol/noticia.html → lance.com.br/futebol/noticia.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := artex.HostOf(rawURL)
	if host == "" {
		return "", artex.Errorf(artex.EINVALID, "URL %q has no host", rawURL)
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", artex.Errorf(artex.EINVALID, "path traversal in %q", rawURL)
		}
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(p, "/"):
		p += "index"
	default:
		for _, ext := range pageExtensions {
			if strings.HasSuffix(strings.ToLower(p), ext) {
				p = p[:len(p)-len(ext)]
				break
			}
		}
	}

	return path.Join(host, p) + ".md", nil
}

// frontmatter is the YAML header written above the Markdown body.
type frontmatter struct {
	Source        string   `yaml:"source"`
	Title         string   `yaml:"title"`
	Excerpt       string   `yaml:"excerpt,omitempty"`
	FeaturedImage string   `yaml:"featured_image,omitempty"`
	Images        []string `yaml:"images,omitempty"`
	Videos        []string `yaml:"videos,omitempty"`
	Strategy      string   `yaml:"strategy,omitempty"`
	Extracted     string   `yaml:"extracted"`
}

// Renderer turns articles into Markdown documents.
type Renderer struct {
	Converter artex.Converter

	// MergeImages, when set, folds up to MergeLimit of the article's images
	// into the body before conversion.
	MergeImages func(contentHTML string, images []string, limit int) string
	MergeLimit  int
}

// NewRenderer creates a Renderer that converts with c.
func NewRenderer(c artex.Converter) *Renderer {
	return &Renderer{Converter: c, MergeLimit: DefaultMergeLimit}
}

// Render returns the article as YAML frontmatter followed by its Markdown body.
func (r *Renderer) Render(a *artex.Article) (string, error) {
	content := a.ContentHTML
	if r.MergeImages != nil && len(a.Images) > 0 {
		content = r.MergeImages(content, a.Images, r.MergeLimit)
	}

	body, err := r.Converter.Convert(content, a.SourceURL)
	if err != nil {
		return "", err
	}

	fm := frontmatter{
		Source:        a.SourceURL,
		Title:         a.Title,
		Excerpt:       a.Excerpt,
		FeaturedImage: a.FeaturedImageURL,
		Images:        a.Images,
		Strategy:      a.Strategy,
		Extracted:     a.ExtractedAt.Format("2006-01-02"),
	}
	for _, v := range a.Videos {
		fm.Videos = append(fm.Videos, v.WatchURL)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}
