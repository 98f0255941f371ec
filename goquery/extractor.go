package goquery

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// Strategy names recorded on extracted articles.
const (
	StrategyGeneric    = "generic"
	StrategySitePrefix = "site:"
)

// Ensure Extractor implements artex.Extractor at compile time.
var _ artex.Extractor = (*Extractor)(nil)

// Extractor turns raw news pages into articles. Pages from hosts with a
// site rule go through the rule's container and junk list; every other page,
// and every page whose rule finds no container, goes through the generic
// path. Extractor holds only read-only tables and is safe for concurrent use.
type Extractor struct {
	body     artex.BodyExtractor
	sites    artex.SiteRegistry
	rules    artex.JunkRules
	detector *Detector
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSites sets the site rule registry. Defaults to the built-in rules.
func WithSites(sites artex.SiteRegistry) Option {
	return func(e *Extractor) {
		e.sites = sites
	}
}

// WithJunkRules sets the boilerplate pattern tables.
// Defaults to DefaultJunkRules.
func WithJunkRules(rules artex.JunkRules) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithClock sets the function used to stamp ExtractedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor that uses body for general-purpose
// body extraction on the generic path.
func NewExtractor(body artex.BodyExtractor, opts ...Option) *Extractor {
	e := &Extractor{
		body:     body,
		sites:    NewRegistry(DefaultRules()...),
		rules:    DefaultJunkRules(),
		detector: NewDetector(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML fetched from sourceURL and returns the article.
// Returns EINVALID for empty input or a relative source URL and ENOTFOUND
// when no body text could be located. A fault inside any stage is reported
// as EINTERNAL rather than escaping.
func (e *Extractor) Extract(rawHTML, sourceURL string) (article *artex.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			article = nil
			err = artex.Errorf(artex.EINTERNAL, "extract %s: %v", sourceURL, r)
		}
	}()

	if strings.TrimSpace(rawHTML) == "" {
		return nil, artex.Errorf(artex.EINVALID, "empty HTML input")
	}
	base, err := url.Parse(sourceURL)
	if err != nil || !base.IsAbs() {
		return nil, artex.Errorf(artex.EINVALID, "invalid source URL %q", sourceURL)
	}

	if rule, ok := e.sites.Lookup(base.Hostname()); ok {
		if a := e.extractSite(rawHTML, base, rule); a != nil {
			return a, nil
		}
	}
	return e.extractGeneric(rawHTML, base)
}

// extractSite runs a site rule. Returns nil when the rule's container is
// missing or yields no content, so the caller can fall back.
func (e *Extractor) extractSite(rawHTML string, base *url.URL, rule artex.SiteRule) *artex.Article {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil
	}
	container := findContainer(doc.Selection, rule.ContainerSelectors)
	if container == nil {
		return nil
	}
	removeSelectors(container, rule.JunkSelectors)

	md := ResolveMetadata(doc, base, container)
	images := CollectImages(container, base)
	videos := DetectVideos(metaContent(doc, "og:image"), container, doc.Selection)

	var content string
	if rule.AllowSelector != "" {
		content = allowListed(container, rule.AllowSelector)
	} else {
		content = outerHTML(container)
	}
	content = Sanitize(content, e.rules)
	if !hasContent(content) {
		return nil
	}
	return e.assemble(base, md, content, images, videos, StrategySitePrefix+rule.Name)
}

// extractGeneric runs the cleaner, locator, resolvers, and body extractor.
// The body comes from the first source that yields text: the body
// extractor, the detected platform's body container, the located body root,
// and finally every paragraph of the unmodified page.
func (e *Extractor) extractGeneric(rawHTML string, base *url.URL) (*artex.Article, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, artex.Errorf(artex.EINVALID, "failed to parse HTML: %v", err)
	}

	// Read before cleaning: structured data and tweet embeds often sit in
	// regions the cleaner removes.
	schema, hasSchema := parseSchema(doc)
	embeds := outerHTML(doc.Find("blockquote.twitter-tweet"))
	ogImage := metaContent(doc, "og:image")
	platform := e.detector.detect(doc)

	Clean(doc, base.Hostname(), e.rules)
	root := LocateBody(doc, e.rules)
	ConvertDataImages(root)

	md := resolveMetadata(doc, base, root, schema, hasSchema)
	images := CollectImages(root, base)
	videos := DetectVideos(ogImage, doc.Selection)

	cleaned, err := doc.Html()
	if err != nil {
		return nil, artex.Errorf(artex.EINTERNAL, "failed to render cleaned HTML: %v", err)
	}

	content := firstNonEmpty(
		func() string { return e.extractBody(cleaned, base.String()) },
		func() string { return platformBody(doc, platform) },
		func() string { return rootContent(root) },
	)
	if content != "" && embeds != "" && !strings.Contains(content, "twitter-tweet") {
		content += embeds
	}
	content = Sanitize(content, e.rules)
	if !hasContent(content) {
		content = Sanitize(rawParagraphs(rawHTML), e.rules)
	}
	if !hasContent(content) {
		return nil, artex.Errorf(artex.ENOTFOUND, "no article body found at %s", base.String())
	}

	return e.assemble(base, md, content, images, videos, StrategyGeneric), nil
}

// extractBody runs the general-purpose body extractor, treating errors and
// text-less output as no result.
func (e *Extractor) extractBody(cleaned, sourceURL string) string {
	if e.body == nil {
		return ""
	}
	body, err := e.body.ExtractBody(cleaned, sourceURL)
	if err != nil || !hasContent(body) {
		return ""
	}
	return body
}

// assemble builds the article, keeping the featured image out of the image
// list.
func (e *Extractor) assemble(base *url.URL, md artex.Metadata, content string, images []string, videos []artex.Video, strategy string) *artex.Article {
	featured := md.FeaturedImageURL
	key := artex.ImageKey(featured)
	images = slices.DeleteFunc(slices.Clone(images), func(u string) bool {
		return featured != "" && artex.ImageKey(u) == key
	})
	if images == nil {
		images = []string{}
	}
	if videos == nil {
		videos = []artex.Video{}
	}
	return &artex.Article{
		SourceURL:        base.String(),
		Title:            md.Title,
		ContentHTML:      content,
		Excerpt:          md.Excerpt,
		FeaturedImageURL: featured,
		Images:           images,
		Videos:           videos,
		Schema:           md.Schema,
		Strategy:         strategy,
		ExtractedAt:      e.now().UTC(),
	}
}

// findContainer returns the first match of the first selector that matches.
func findContainer(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if c := find(s, selector).First(); c.Length() > 0 {
			return c
		}
	}
	return nil
}

// allowListed rebuilds a body from the elements of container matching
// selector, in document order. Matches nested inside another match are
// rendered once with their ancestor, and figures without a raster image are
// skipped.
func allowListed(container *goquery.Selection, selector string) string {
	matches := find(container, selector)
	picked := make(map[*html.Node]struct{}, matches.Length())
	var b strings.Builder
	matches.Each(func(_ int, el *goquery.Selection) {
		n := el.Get(0)
		for p := n.Parent; p != nil && p != container.Get(0); p = p.Parent {
			if _, ok := picked[p]; ok {
				return
			}
		}
		if n.Data == "figure" && !hasRasterImage(el) {
			return
		}
		picked[n] = struct{}{}
		b.WriteString(outerHTML(el))
	})
	return b.String()
}

// hasRasterImage reports whether a figure holds an image that is not an
// SVG icon.
func hasRasterImage(fig *goquery.Selection) bool {
	img := fig.Find("img").First()
	if img.Length() == 0 {
		return false
	}
	src := strings.ToLower(imgSource(img))
	u, err := url.Parse(src)
	if err == nil {
		src = u.Path
	}
	return !strings.HasSuffix(src, ".svg")
}

// rootContent renders the located body root when it carries text.
func rootContent(root *goquery.Selection) string {
	if root == nil || ownText(root) == "" {
		return ""
	}
	if root.Get(0).Type == html.DocumentNode {
		body, err := root.Find("body").Html()
		if err != nil {
			return ""
		}
		return body
	}
	return outerHTML(root)
}

// rawParagraphs returns every paragraph of the unmodified page. It is the
// last resort when cleaning removed all body text.
func rawParagraphs(rawHTML string) string {
	doc, err := parse(rawHTML)
	if err != nil {
		return ""
	}
	var b strings.Builder
	doc.Find("body p").Each(func(_ int, p *goquery.Selection) {
		if ownText(p) != "" {
			b.WriteString(outerHTML(p))
		}
	})
	return b.String()
}

// hasContent reports whether an HTML fragment has visible text or media.
func hasContent(fragment string) bool {
	if strings.TrimSpace(fragment) == "" {
		return false
	}
	doc, err := parse(fragment)
	if err != nil {
		return false
	}
	body := doc.Find("body")
	return ownText(body) != "" || body.Find("img, picture, video").Length() > 0
}
