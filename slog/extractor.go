package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingExtractor implements artex.Extractor.
var _ artex.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   artex.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next artex.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it produced.
func (e *LoggingExtractor) Extract(rawHTML, sourceURL string) (article *artex.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", sourceURL,
			"duration", time.Since(begin),
		}
		if article != nil {
			attrs = append(attrs,
				"strategy", article.Strategy,
				"title", article.Title,
				"images", len(article.Images),
				"videos", len(article.Videos),
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
			e.logger.Warn("extract", attrs...)
			return
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(rawHTML, sourceURL)
}
