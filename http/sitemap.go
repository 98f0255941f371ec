package http

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/artex"
)

// sitemapFallbacks are tried in order when robots.txt lists no sitemap.
var sitemapFallbacks = []string{"/news-sitemap.xml", "/sitemap-news.xml", "/sitemap.xml"}

// sitemapDateLayouts are the W3C datetime forms accepted in sitemaps.
var sitemapDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Ensure SitemapService implements artex.SitemapService.
var _ artex.SitemapService = (*SitemapService)(nil)

// SitemapService discovers article URLs from news sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
	maxAge time.Duration
	now    func() time.Time
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxAge skips URLs and child sitemaps dated older than d. Entries
// without a date are always kept. Zero disables the cutoff.
func WithMaxAge(d time.Duration) SitemapOption {
	return func(s *SitemapService) {
		s.maxAge = d
	}
}

// WithSitemapClock sets the clock used for the age cutoff.
func WithSitemapClock(now func() time.Time) SitemapOption {
	return func(s *SitemapService) {
		s.now = now
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sitemapEntry is a URL with the newest date its sitemap declares for it.
type sitemapEntry struct {
	loc      string
	modified time.Time
}

// DiscoverURLs finds the article URLs in a site's sitemaps, newest first.
// The date of an entry is its news publication date, or its lastmod when
// it has none; undated entries follow dated ones in sitemap order.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/esportes/),
// only URLs with paths starting with that prefix are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *artex.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, artex.Errorf(artex.EINVALID, "invalid base URL %q", baseURL)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the root of the domain.
	sitemapBase := *base
	sitemapBase.Path = ""
	sitemapBase.RawQuery = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &sitemapBase)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var entries []sitemapEntry
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]int)

	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if i, ok := seenURLs[e.loc]; ok {
				if e.modified.After(entries[i].modified) {
					entries[i].modified = e.modified
				}
				continue
			}
			seenURLs[e.loc] = len(entries)
			entries = append(entries, e)
		}
	}

	// Newest first; the stable sort keeps undated entries in sitemap order.
	slices.SortStableFunc(entries, func(a, b sitemapEntry) int {
		return b.modified.Compare(a.modified)
	})

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if pathPrefix != "" && !matchesPathPrefix(e.loc, pathPrefix) {
			continue
		}
		if !filter.Match(e.loc) {
			continue
		}
		urls = append(urls, e.loc)
	}
	return urls, nil
}

// matchesPathPrefix checks if a URL's path starts with the given prefix,
// respecting path boundaries: /esportes matches /esportes/ and
// /esportes/futebol but not /esportesradicais.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to
// the well-known news and general sitemap locations.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	for _, path := range sitemapFallbacks {
		sitemapURL := base.ResolveReference(&url.URL{Path: path})
		exists, err := s.urlExists(ctx, sitemapURL.String())
		if err != nil {
			// Propagate context errors, treat other errors as "not found"
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if exists {
			return []string{sitemapURL.String()}, nil
		}
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
// News sitemaps are listed first.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	slices.SortStableFunc(sitemaps, func(a, b string) int {
		return cmp.Compare(newsRank(a), newsRank(b))
	})
	return sitemaps, nil
}

func newsRank(sitemapURL string) int {
	if strings.Contains(strings.ToLower(sitemapURL), "news") {
		return 0
	}
	return 1
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]sitemapEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}
	return s.parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively,
// skipping child sitemaps last modified before the age cutoff.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]sitemapEntry, error) {
	var all []sitemapEntry

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}
		if s.tooOld(parseSitemapDate(childText(sitemap, "lastmod"))) {
			continue
		}

		entries, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}

	return all, nil
}

// parseURLSet extracts dated entries from a <urlset> element. The news
// publication date wins over lastmod.
func (s *SitemapService) parseURLSet(root *etree.Element) []sitemapEntry {
	var entries []sitemapEntry
	for _, urlEl := range root.SelectElements("url") {
		loc := strings.TrimSpace(childText(urlEl, "loc"))
		if loc == "" {
			continue
		}
		modified := parseSitemapDate(childText(urlEl.SelectElement("news"), "publication_date"))
		if modified.IsZero() {
			modified = parseSitemapDate(childText(urlEl, "lastmod"))
		}
		if s.tooOld(modified) {
			continue
		}
		entries = append(entries, sitemapEntry{loc: loc, modified: modified})
	}
	return entries
}

// tooOld reports whether a dated entry falls before the age cutoff.
func (s *SitemapService) tooOld(t time.Time) bool {
	return s.maxAge > 0 && !t.IsZero() && t.Before(s.now().Add(-s.maxAge))
}

// childText returns the trimmed text of the first child element named tag.
func childText(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// parseSitemapDate parses a W3C datetime. Returns the zero time when v is
// empty or malformed.
func parseSitemapDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range sitemapDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
