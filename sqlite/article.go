package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/artex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ artex.ArticleService = (*ArticleService)(nil)

const articleColumns = `id, source_url, title, content_html, excerpt, featured_image_url,
	images, videos, schema_json, strategy, content_hash, tokens, extracted_at`

// ArticleService implements artex.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns a 16 digit hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// CreateArticle stores a new article and assigns its ID. The content hash
// is computed when the caller did not set one, and the extraction time
// defaults to now.
func (s *ArticleService) CreateArticle(ctx context.Context, article *artex.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE source_url = ?", article.SourceURL,
	).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return artex.Errorf(artex.ECONFLICT, "article already exists for %s", article.SourceURL)
	}

	images, err := marshalJSON(article.Images, "[]")
	if err != nil {
		return err
	}
	videos, err := marshalJSON(article.Videos, "[]")
	if err != nil {
		return err
	}
	schema, err := marshalJSON(article.Schema, "")
	if err != nil {
		return err
	}

	article.ID = uuid.New().String()
	if article.ContentHash == "" {
		article.ContentHash = hashContent(article.ContentHTML)
	}
	if article.ExtractedAt.IsZero() {
		article.ExtractedAt = time.Now()
	}
	article.ExtractedAt = article.ExtractedAt.UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_url, host, title, content_html, excerpt, featured_image_url,
			images, videos, schema_json, strategy, content_hash, tokens, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.SourceURL, article.Host(), article.Title, article.ContentHTML, article.Excerpt,
		article.FeaturedImageURL, images, videos, schema, article.Strategy, article.ContentHash,
		article.Tokens, article.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*artex.Article, error) {
	articles, err := s.FindArticles(ctx, artex.ArticleFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, artex.Errorf(artex.ENOTFOUND, "article not found")
	}
	return articles[0], nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Host != nil {
		query.WriteString(" AND host = ?")
		args = append(args, strings.TrimPrefix(strings.ToLower(*filter.Host), "www."))
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*artex.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return artex.Errorf(artex.ENOTFOUND, "article not found")
	}

	return nil
}

// scanArticle reads one row selected with articleColumns.
func scanArticle(rows *sql.Rows) (*artex.Article, error) {
	var a artex.Article
	var images, videos, schema, extractedAt string

	if err := rows.Scan(&a.ID, &a.SourceURL, &a.Title, &a.ContentHTML, &a.Excerpt, &a.FeaturedImageURL,
		&images, &videos, &schema, &a.Strategy, &a.ContentHash, &a.Tokens, &extractedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &a.Images); err != nil {
		return nil, fmt.Errorf("failed to parse images: %w", err)
	}
	if err := json.Unmarshal([]byte(videos), &a.Videos); err != nil {
		return nil, fmt.Errorf("failed to parse videos: %w", err)
	}
	if schema != "" {
		if err := json.Unmarshal([]byte(schema), &a.Schema); err != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
	}

	var err error
	a.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// marshalJSON encodes v for a TEXT column, storing empty as the given value.
func marshalJSON[T any](v T, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode: %w", err)
	}
	if s := string(data); s != "null" {
		return s, nil
	}
	return empty, nil
}
