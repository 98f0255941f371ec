package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var (
	_ artex.ArticleService = (*ArticleService)(nil)
	_ artex.ArticleWriter  = (*ArticleWriter)(nil)
	_ artex.ArticleStore   = (*ArticleStore)(nil)
)

// ArticleService is a mock implementation of artex.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *artex.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*artex.Article, error)
	FindArticlesFn    func(ctx context.Context, filter artex.ArticleFilter) ([]*artex.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *artex.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*artex.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

// ArticleWriter is a mock implementation of artex.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *artex.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *artex.Article) error {
	return w.WriteArticleFn(ctx, article)
}

// ArticleStore is a mock implementation of artex.ArticleStore.
type ArticleStore struct {
	SaveFn   func(ctx context.Context, article *artex.Article) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArticleStore) Save(ctx context.Context, article *artex.Article) error {
	return s.SaveFn(ctx, article)
}

func (s *ArticleStore) Commit() error {
	return s.CommitFn()
}

func (s *ArticleStore) Abort() error {
	return s.AbortFn()
}
