package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/bloom"
)

// Seen set sizing for a single harvest.
const (
	// seenExpectedURLs is the expected number of URLs for Bloom filter sizing.
	seenExpectedURLs = 100000
	// seenFalsePositiveRate is the acceptable false positive rate before confirmation.
	seenFalsePositiveRate = 0.01
	// seenLoadPageSize is the number of stored articles read per query while loading.
	seenLoadPageSize = 500
)

// SeenSet tracks source URLs that were already harvested. A Bloom filter
// answers most lookups; positives are confirmed against the article store
// so that false positives never hide a new article.
// It is safe for concurrent use by multiple goroutines.
type SeenSet struct {
	mu       sync.Mutex
	filter   *bloom.Filter
	marked   map[string]bool
	articles artex.ArticleService
}

// NewSeenSet creates an empty SeenSet backed by articles. If articles is
// nil, filter positives are trusted.
func NewSeenSet(articles artex.ArticleService) *SeenSet {
	return &SeenSet{
		filter:   bloom.NewFilter(seenExpectedURLs, seenFalsePositiveRate),
		marked:   make(map[string]bool),
		articles: articles,
	}
}

// Load adds the source URLs of every stored article for host.
func (s *SeenSet) Load(ctx context.Context, host string) error {
	if s.articles == nil {
		return nil
	}
	for offset := 0; ; offset += seenLoadPageSize {
		articles, err := s.articles.FindArticles(ctx, artex.ArticleFilter{
			Host:   &host,
			Offset: offset,
			Limit:  seenLoadPageSize,
		})
		if err != nil {
			return err
		}
		s.mu.Lock()
		for _, a := range articles {
			s.filter.Add(a.SourceURL)
		}
		s.mu.Unlock()
		if len(articles) < seenLoadPageSize {
			return nil
		}
	}
}

// Mark records rawURL as harvested.
func (s *SeenSet) Mark(rawURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Add(rawURL)
	s.marked[bloom.CanonicalURL(rawURL)] = true
}

// Seen reports whether rawURL was marked in this run or is already stored.
func (s *SeenSet) Seen(ctx context.Context, rawURL string) (bool, error) {
	s.mu.Lock()
	hit := s.filter.Test(rawURL)
	marked := s.marked[bloom.CanonicalURL(rawURL)]
	s.mu.Unlock()

	if !hit {
		return false, nil
	}
	if marked || s.articles == nil {
		return true, nil
	}

	articles, err := s.articles.FindArticles(ctx, artex.ArticleFilter{SourceURL: &rawURL, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(articles) > 0, nil
}
