package artex

import "context"

// ArticleWriter exports a single article outside the article store.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// ArticleStore exports a batch of articles with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ArticleStore interface {
	Save(ctx context.Context, article *Article) error
	Commit() error
	Abort() error
}
