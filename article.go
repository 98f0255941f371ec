package artex

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Article is the structured record produced by extracting a news page.
type Article struct {
	ID               string         `json:"id,omitempty"`
	SourceURL        string         `json:"sourceUrl"`
	Title            string         `json:"title"`
	ContentHTML      string         `json:"contentHtml"`
	Excerpt          string         `json:"excerpt"`
	FeaturedImageURL string         `json:"featuredImageUrl"`
	Images           []string       `json:"images"`
	Videos           []Video        `json:"videos"`
	Schema           map[string]any `json:"schema,omitempty"`

	// Strategy names the extraction path that produced the article,
	// either "generic" or "site:<rule name>".
	Strategy    string    `json:"strategy"`
	ContentHash string    `json:"contentHash,omitempty"`
	Tokens      int       `json:"tokens,omitempty"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Host returns the lowercase host of the article's source URL without a
// leading "www.".
func (a *Article) Host() string {
	return HostOf(a.SourceURL)
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if strings.TrimSpace(a.ContentHTML) == "" {
		return Errorf(EINVALID, "article content required")
	}
	if a.FeaturedImageURL != "" {
		featured := ImageKey(a.FeaturedImageURL)
		for _, img := range a.Images {
			if ImageKey(img) == featured {
				return Errorf(EINVALID, "featured image must not be listed among images")
			}
		}
	}
	return nil
}

// ImageKey returns the form under which two image URLs count as the same
// image: trimmed, lowercased, without trailing slashes.
func ImageKey(u string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(u), "/"))
}

// Video is an embedded YouTube video.
type Video struct {
	ID       string `json:"id"`
	EmbedURL string `json:"embedUrl"`
	WatchURL string `json:"watchUrl"`
}

// NewVideo builds a Video from an 11 character YouTube id.
func NewVideo(id string) Video {
	return Video{
		ID:       id,
		EmbedURL: "https://www.youtube.com/embed/" + id,
		WatchURL: "https://www.youtube.com/watch?v=" + id,
	}
}

// Metadata is the page-level information resolved from structured data,
// Open Graph tags, and document markup.
type Metadata struct {
	Title            string
	Excerpt          string
	FeaturedImageURL string
	Schema           map[string]any
}

// ImageCandidate is an image URL discovered while scanning article markup.
type ImageCandidate struct {
	URL    string
	Source string
	Width  int
	Height int
	Rank   int
}

// HostOf returns the lowercase host of rawURL without a leading "www.".
// Returns an empty string if rawURL cannot be parsed.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// ArticleService represents a service for managing extracted articles.
type ArticleService interface {
	// CreateArticle stores a new article. Returns ECONFLICT if an article
	// with the same source URL already exists.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Host      *string `json:"host"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
