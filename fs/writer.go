package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/artex"
)

// Ensure Writer implements artex.ArticleWriter at compile time.
var _ artex.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir  string
	renderer *Renderer
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, renderer *Renderer) *Writer {
	return &Writer{baseDir: baseDir, renderer: renderer}
}

// WriteArticle writes an article to disk as a markdown file.
func (w *Writer) WriteArticle(ctx context.Context, article *artex.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}
	return writeArticle(w.baseDir, w.renderer, article)
}

// writeArticle renders article to its URL-derived path below dir.
func writeArticle(dir string, renderer *Renderer, article *artex.Article) error {
	relPath, err := URLToPath(article.SourceURL)
	if err != nil {
		return err
	}

	content, err := renderer.Render(article)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
