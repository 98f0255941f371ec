package goquery

import (
	"net/url"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
)

// Image size constraints for declared dimensions.
const (
	MinImageWidth  = 600
	MinImageHeight = 315
	MinImageRatio  = 0.6
	MaxImageRatio  = 2.2
)

// Ranks assigned to image candidates; lower sorts first.
const (
	rankPriorityCDN = 0
	rankDefault     = 1
)

var (
	badImageHosts = []string{
		"gravatar.com", "twimg.com", "facebook.com", "fbcdn.net",
		"gstatic.com", "googleusercontent.com",
		"schema.org", "scorecardresearch.com", "doubleclick.net",
		"quantserve.com", "chartbeat.com", "google-analytics.com",
	}

	badImageKeywords = []string{
		"author", "autor", "avatar", "byline", "perfil", "profile",
		"placeholder", "logo", "logomarca", "brand", "marca",
		"icon", "favicon", "sprite", "comment", "user", "usuario", "usuário",
	}

	junkImageFilenames = []string{
		"placeholder", "sprite", "icon", "emoji", ".svg",
		"cta", "read-more", "share", "logo", "banner",
	}

	priorityCDNHosts = []string{
		"static1.srcdn.com",
		"static1.colliderimages.com",
		"static1.cbrimages.com",
		"static1.moviewebimages.com",
		"static0.gamerantimages.com", "static1.gamerantimages.com",
		"static2.gamerantimages.com", "static3.gamerantimages.com",
		"static1.thegamerimages.com",
	}

	dimensionSuffix = regexp.MustCompile(`(?i)-(\d{2,5})x(\d{2,5})\.[a-z]{3,4}$`)
	styleURL        = regexp.MustCompile(`url\(\s*(.*?)\s*\)`)
)

// IsValidImageURL reports whether u looks like article imagery rather than
// an avatar, icon, tracker, or thumbnail. URLs without declared dimensions
// pass the size checks.
func IsValidImageURL(u string) bool {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasPrefix(strings.ToLower(u), "data:") {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, bad := range badImageHosts {
		if hostMatches(host, bad) {
			return false
		}
	}

	p := strings.ToLower(parsed.Path)
	for _, kw := range badImageKeywords {
		if strings.Contains(p, kw) {
			return false
		}
	}
	name := path.Base(p)
	for _, junk := range junkImageFilenames {
		if strings.Contains(name, junk) {
			return false
		}
	}

	if w, h, ok := declaredDimensions(parsed); ok {
		if w < MinImageWidth || h < MinImageHeight {
			return false
		}
		ratio := float64(w) / float64(h)
		if ratio < MinImageRatio || ratio > MaxImageRatio {
			return false
		}
	}
	return true
}

// declaredDimensions reads width and height from width/w and height/h query
// parameters, or from a -WxH filename suffix.
func declaredDimensions(u *url.URL) (int, int, bool) {
	q := u.Query()
	ws := firstNonEmpty(func() string { return q.Get("width") }, func() string { return q.Get("w") })
	hs := firstNonEmpty(func() string { return q.Get("height") }, func() string { return q.Get("h") })
	if ws != "" && hs != "" {
		w, werr := strconv.Atoi(ws)
		h, herr := strconv.Atoi(hs)
		if werr == nil && herr == nil && h > 0 {
			return w, h, true
		}
	}
	if m := dimensionSuffix.FindStringSubmatch(u.Path); m != nil {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		if h > 0 {
			return w, h, true
		}
	}
	return 0, 0, false
}

// isPriorityCDN reports whether host is a publisher CDN preferred during
// de-duplication.
func isPriorityCDN(host string) bool {
	return slices.Contains(priorityCDNHosts, strings.ToLower(host))
}

// CollectImages returns the valid image URLs found under root, made
// absolute against base, de-duplicated, and ordered by rank then first
// appearance. It reads root without modifying it.
func CollectImages(root *goquery.Selection, base *url.URL) []string {
	candidates := CollectImageCandidates(root, base)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.URL)
	}
	return out
}

// CollectImageCandidates is CollectImages with per-image detail.
func CollectImageCandidates(root *goquery.Selection, base *url.URL) []artex.ImageCandidate {
	c := newImageCollector(base)
	if root == nil {
		return nil
	}

	root.Find(`img:not([aria-hidden="true"])`).Each(func(_ int, img *goquery.Selection) {
		c.push(imgSource(img), "img")
	})
	root.Find("picture source[srcset]").Each(func(_ int, src *goquery.Selection) {
		c.push(largestSrcset(src.AttrOr("srcset", "")), "picture")
	})
	root.Find("noscript").Each(func(_ int, ns *goquery.Selection) {
		inner, err := parse(ns.Text())
		if err != nil {
			return
		}
		inner.Find("img").Each(func(_ int, img *goquery.Selection) {
			c.push(firstAttr(img, "src", "data-src", "data-original"), "noscript")
		})
	})
	root.Find("[data-img-url], [data-image], [data-src], [data-original]").Each(func(_ int, el *goquery.Selection) {
		c.push(firstAttr(el, "data-img-url", "data-image", "data-src", "data-original"), "data")
	})
	root.Find(`[style*="background-image"]`).Each(func(_ int, el *goquery.Selection) {
		c.push(backgroundImage(el.AttrOr("style", "")), "style")
	})
	root.Find("figure img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" {
			src = largestSrcset(img.AttrOr("srcset", ""))
		}
		c.push(src, "figure")
	})

	return c.result()
}

// imgSource returns the first usable source attribute of an img, falling
// back to the widest srcset entry.
func imgSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-original", "data-lazy-src", "data-image", "data-img-url"} {
		v := strings.TrimSpace(img.AttrOr(attr, ""))
		if v != "" && !strings.HasPrefix(strings.ToLower(v), "data:") {
			return v
		}
	}
	return largestSrcset(img.AttrOr("srcset", ""))
}

func firstAttr(s *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// largestSrcset returns the srcset entry with the largest width descriptor.
// Entries without a width descriptor count as zero; later entries win ties.
func largestSrcset(srcset string) string {
	best, bestW := "", -1
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		w := 0
		if len(fields) > 1 && strings.HasSuffix(fields[1], "w") {
			w, _ = strconv.Atoi(strings.TrimSuffix(fields[1], "w"))
		}
		if w >= bestW {
			best, bestW = fields[0], w
		}
	}
	return best
}

// backgroundImage extracts the url(...) of an inline style.
func backgroundImage(style string) string {
	m := styleURL.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], `'"`)
}

// imageCollector accumulates de-duplicated candidates.
type imageCollector struct {
	base    *url.URL
	entries []artex.ImageCandidate
	byKey   map[string]int
	byPath  map[string]int
}

func newImageCollector(base *url.URL) *imageCollector {
	return &imageCollector{
		base:   base,
		byKey:  make(map[string]int),
		byPath: make(map[string]int),
	}
}

// push validates and records raw. A repeat of a known URL is dropped. The
// same path on a different host merges into the earlier entry when either
// host is a priority CDN; the CDN URL and its rank win while the earlier
// position is kept.
func (c *imageCollector) push(raw, source string) {
	abs := absURL(c.base, raw)
	if abs == "" || !IsValidImageURL(abs) {
		return
	}
	abs = strings.TrimRight(abs, "/")
	key := artex.ImageKey(abs)
	if _, ok := c.byKey[key]; ok {
		return
	}

	u, err := url.Parse(abs)
	if err != nil {
		return
	}
	rank := rankDefault
	if isPriorityCDN(u.Hostname()) {
		rank = rankPriorityCDN
	}
	pathKey := strings.ToLower(strings.TrimRight(u.Path, "/"))

	if i, ok := c.byPath[pathKey]; ok {
		prev := &c.entries[i]
		prevURL, _ := url.Parse(prev.URL)
		if rank == rankPriorityCDN || (prevURL != nil && isPriorityCDN(prevURL.Hostname())) {
			c.byKey[key] = i
			if rank < prev.Rank {
				prev.URL, prev.Source, prev.Rank = abs, source, rank
			}
			return
		}
	}

	cand := artex.ImageCandidate{URL: abs, Source: source, Rank: rank}
	if w, h, ok := declaredDimensions(u); ok {
		cand.Width, cand.Height = w, h
	}
	c.byKey[key] = len(c.entries)
	if _, ok := c.byPath[pathKey]; !ok && pathKey != "" {
		c.byPath[pathKey] = len(c.entries)
	}
	c.entries = append(c.entries, cand)
}

// result returns entries ordered by rank, then first appearance.
func (c *imageCollector) result() []artex.ImageCandidate {
	out := slices.Clone(c.entries)
	slices.SortStableFunc(out, func(a, b artex.ImageCandidate) int {
		return a.Rank - b.Rank
	})
	return out
}
