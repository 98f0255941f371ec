package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
)

// SourceJSONLD marks listing links read from structured data.
const SourceJSONLD = "jsonld"

// trackingParams are query parameters stripped from listing links.
var trackingParams = []string{"gclid", "fbclid"}

// Ensure ListingExtractor implements artex.ListingExtractor at compile time.
var _ artex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor finds article links on section and home pages.
type ListingExtractor struct{}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor() *ListingExtractor {
	return &ListingExtractor{}
}

// ExtractLinks returns the article links of a listing page. Links come from
// structured data when the page has any; otherwise selectors are tried in
// order and the first one that yields links wins. Selector links must stay on
// the listing host. Tracking parameters and fragments are removed and the
// result is de-duplicated by URL in page order.
func (l *ListingExtractor) ExtractLinks(html, listURL string, selectors []string, limit int) ([]artex.ListingLink, error) {
	base, err := url.Parse(listURL)
	if err != nil || !base.IsAbs() {
		return nil, artex.Errorf(artex.EINVALID, "invalid listing URL %q", listURL)
	}
	doc, err := parse(html)
	if err != nil {
		return nil, artex.Errorf(artex.EINVALID, "failed to parse HTML: %v", err)
	}

	links := jsonLDLinks(doc, base)
	if len(links) == 0 {
		links = selectorLinks(doc, base, selectors)
	}
	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	return links, nil
}

// jsonLDLinks reads article objects and item lists from structured data.
func jsonLDLinks(doc *goquery.Document, base *url.URL) []artex.ListingLink {
	c := newLinkCollector(base)
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		v, ok := decodeJSONLD(s.Text())
		if !ok {
			return
		}
		for _, blob := range listingBlobs(v) {
			if blob.isArticle() {
				c.add(blob.get("headline").text(), blob.get("url").url(), SourceJSONLD)
			}
			if !hasType(blob, "ItemList") {
				continue
			}
			for _, item := range blob.get("itemListElement").list {
				href, name := item.get("url").url(), item.get("name").text()
				if href == "" {
					inner := item.get("item")
					href = inner.get("url").url()
					if name == "" {
						name = inner.get("name").text()
					}
				}
				c.add(name, href, SourceJSONLD)
			}
		}
	})
	return c.links
}

// listingBlobs flattens a structured-data value into its top-level objects,
// including the members of an "@graph" wrapper.
func listingBlobs(v jsonValue) []jsonValue {
	var out []jsonValue
	switch v.kind {
	case jsonList:
		for _, item := range v.list {
			out = append(out, listingBlobs(item)...)
		}
	case jsonMapping:
		out = append(out, v)
		out = append(out, listingBlobs(v.get("@graph"))...)
	case jsonNull, jsonScalar:
	}
	return out
}

func hasType(v jsonValue, typ string) bool {
	return slices.Contains(v.types(), typ)
}

// selectorLinks reads anchors matching the first productive selector.
// An empty selector list means every anchor.
func selectorLinks(doc *goquery.Document, base *url.URL, selectors []string) []artex.ListingLink {
	if len(selectors) == 0 {
		selectors = []string{"a"}
	}
	for _, selector := range selectors {
		c := newLinkCollector(base)
		c.sameHost = true
		find(doc.Selection, selector).Each(func(_ int, sel *goquery.Selection) {
			href := strings.TrimSpace(sel.AttrOr("href", ""))
			if strings.HasPrefix(href, "#") {
				return
			}
			c.add(sel.Text(), href, selector)
		})
		if len(c.links) > 0 {
			return c.links
		}
	}
	return nil
}

// linkCollector accumulates cleaned, de-duplicated listing links.
type linkCollector struct {
	base     *url.URL
	sameHost bool
	seen     map[string]struct{}
	links    []artex.ListingLink
}

func newLinkCollector(base *url.URL) *linkCollector {
	return &linkCollector{base: base, seen: make(map[string]struct{})}
}

func (c *linkCollector) add(title, href, source string) {
	title = collapse(title)
	resolved := resolveURL(c.base, href)
	if title == "" || resolved == "" {
		return
	}
	if c.sameHost && artex.HostOf(resolved) != artex.HostOf(c.base.String()) {
		return
	}
	if _, ok := c.seen[resolved]; ok {
		return
	}
	c.seen[resolved] = struct{}{}
	c.links = append(c.links, artex.ListingLink{Title: title, URL: resolved, Source: source})
}

// resolveURL resolves href against base and removes tracking parameters and
// the fragment. Returns an empty string for non-HTTP links and for links
// back to the listing page itself.
func resolveURL(base *url.URL, href string) string {
	abs := absURL(base, strings.Join(strings.Fields(href), ""))
	if abs == "" {
		return ""
	}
	u, err := url.Parse(abs)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = stripTracking(u.RawQuery)

	self := *base
	self.Fragment = ""
	if u.String() == self.String() {
		return ""
	}
	return u.String()
}

// stripTracking removes utm_* and click-id parameters from a raw query,
// keeping the order of the rest.
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	var kept []string
	for _, part := range strings.Split(rawQuery, "&") {
		key, _, _ := strings.Cut(part, "=")
		key = strings.ToLower(key)
		if part == "" || strings.HasPrefix(key, "utm_") || slices.Contains(trackingParams, key) {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "&")
}
