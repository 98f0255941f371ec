package fs

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/artex"
)

// Ensure FileStore implements artex.ArticleStore at compile time.
var _ artex.ArticleStore = (*FileStore)(nil)

// FileStore implements artex.ArticleStore with atomic update semantics.
// Articles are saved to a temporary directory, then each file is moved
// atomically into place on Commit.
type FileStore struct {
	baseDir  string
	name     string
	renderer *Renderer
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, renderer *Renderer) *FileStore {
	return &FileStore{
		baseDir:  baseDir,
		name:     name,
		renderer: renderer,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save renders the article into the temporary directory.
func (s *FileStore) Save(ctx context.Context, article *artex.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}
	return writeArticle(s.tempDir(), s.renderer, article)
}

// Commit moves every article saved so far into the output directory,
// replacing files of the same name and keeping the rest. Committing
// without any saved article leaves the output untouched.
func (s *FileStore) Commit() error {
	tmp := s.tempDir()
	if _, err := os.Stat(tmp); os.IsNotExist(err) {
		return nil
	}

	err := filepath.WalkDir(tmp, func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(tmp, p)
		if err != nil {
			return err
		}
		dest := filepath.Join(s.finalDir(), rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.Rename(p, dest)
	})
	if err != nil {
		return err
	}

	return os.RemoveAll(tmp)
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
