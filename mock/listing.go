package mock

import (
	"io"

	"github.com/fwojciec/artex"
)

var _ artex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of artex.ListingExtractor.
type ListingExtractor struct {
	ExtractLinksFn func(html, listURL string, selectors []string, limit int) ([]artex.ListingLink, error)
}

func (m *ListingExtractor) ExtractLinks(html, listURL string, selectors []string, limit int) ([]artex.ListingLink, error) {
	return m.ExtractLinksFn(html, listURL, selectors, limit)
}

var _ artex.FeedEncoder = (*FeedEncoder)(nil)

// FeedEncoder is a mock implementation of artex.FeedEncoder.
type FeedEncoder struct {
	EncodeFeedFn func(w io.Writer, feed *artex.Feed) error
}

func (m *FeedEncoder) EncodeFeed(w io.Writer, feed *artex.Feed) error {
	return m.EncodeFeedFn(w, feed)
}
