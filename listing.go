package artex

import (
	"io"
	"time"
)

// ListingLink is an article link found on a section or home page.
type ListingLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`

	// Source records how the link was found: "jsonld" or the CSS selector
	// that matched it.
	Source string `json:"source"`
}

// ListingExtractor finds article links on listing pages.
type ListingExtractor interface {
	// ExtractLinks returns up to limit article links found on the listing
	// page at listURL, in page order without duplicates. Structured data is
	// preferred; selectors are tried in order when it yields nothing and the
	// first selector that matches wins. A limit of zero means no limit.
	ExtractLinks(html, listURL string, selectors []string, limit int) ([]ListingLink, error)
}

// Feed is a synthetic news feed built from a listing page.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []ListingLink
	BuiltAt     time.Time
}

// NewFeed builds a feed for the listing page at listURL.
// Returns ENOTFOUND when items is empty.
func NewFeed(listURL string, items []ListingLink, now time.Time) (*Feed, error) {
	if len(items) == 0 {
		return nil, Errorf(ENOTFOUND, "no article links found on %s", listURL)
	}
	return &Feed{
		Title:       "Synthetic feed: " + HostOf(listURL),
		Link:        listURL,
		Description: "Generated automatically from " + listURL,
		Items:       items,
		BuiltAt:     now.UTC(),
	}, nil
}

// FeedEncoder writes a feed in a syndication format.
type FeedEncoder interface {
	EncodeFeed(w io.Writer, feed *Feed) error
}
