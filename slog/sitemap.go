package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingSitemapService implements artex.SitemapService.
var _ artex.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   artex.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next artex.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *artex.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"filter", filter.String(),
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

// Ensure LoggingListingExtractor implements artex.ListingExtractor.
var _ artex.ListingExtractor = (*LoggingListingExtractor)(nil)

// LoggingListingExtractor wraps a ListingExtractor with logging.
type LoggingListingExtractor struct {
	next   artex.ListingExtractor
	logger *slog.Logger
}

// NewLoggingListingExtractor creates a new LoggingListingExtractor.
func NewLoggingListingExtractor(next artex.ListingExtractor, logger *slog.Logger) *LoggingListingExtractor {
	return &LoggingListingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs how the links were found.
func (l *LoggingListingExtractor) ExtractLinks(html, listURL string, selectors []string, limit int) (links []artex.ListingLink, err error) {
	defer func(begin time.Time) {
		source := ""
		if len(links) > 0 {
			source = links[0].Source
		}
		l.logger.Info("listing extraction",
			"url", listURL,
			"count", len(links),
			"source", source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ExtractLinks(html, listURL, selectors, limit)
}
