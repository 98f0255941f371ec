// Package bloom provides source URL deduplication using Bloom filters.
package bloom

import (
	"net/url"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter keyed by canonical article URLs.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(CanonicalURL(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(CanonicalURL(rawURL))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// CanonicalURL normalizes an article URL so that trivially different
// spellings of the same page compare equal. The scheme and host are
// lowercased, a leading "www." is dropped, the fragment and tracking
// parameters are removed, remaining query parameters are sorted and a
// trailing slash is trimmed from non-root paths. Unparseable input is
// returned trimmed.
func CanonicalURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Fragment = ""
	u.RawFragment = ""

	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}

	if u.RawQuery != "" {
		parts := strings.Split(u.RawQuery, "&")
		kept := parts[:0]
		for _, p := range parts {
			if p == "" || isTrackingParam(p) {
				continue
			}
			kept = append(kept, p)
		}
		slices.Sort(kept)
		u.RawQuery = strings.Join(kept, "&")
	}

	return u.String()
}

func isTrackingParam(pair string) bool {
	key, _, _ := strings.Cut(pair, "=")
	key = strings.ToLower(key)
	return strings.HasPrefix(key, "utm_") || key == "gclid" || key == "fbclid"
}
