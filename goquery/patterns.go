package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/artex"
)

var _ artex.JunkRules = (*Patterns)(nil)

// Patterns is the built-in set of boilerplate pattern tables.
// It is read-only after construction and safe for concurrent use.
type Patterns struct {
	relatedByHost  map[string][]string
	deny           []string
	content        []string
	leftovers      map[string]struct{}
	relatedHeading *regexp.Regexp
	nonContentWord map[string]struct{}
	nonContentPart []string
}

// DefaultJunkRules returns the pattern tables tuned for Portuguese and
// English news sites.
func DefaultJunkRules() *Patterns {
	return &Patterns{
		relatedByHost: map[string][]string{
			"infomoney.com.br": {
				".single__related", ".article__related", ".post-related", ".related-posts",
				".rm-related", ".block-related", ".single__sidebar", ".article__sidebar",
				"section.single__see-also", ".wp-block-infomoney-blocks-infomoney-read-more",
			},
			"estadao.com.br": {
				".links-relacionados", ".mat-relacionadas", ".es-relacionadas",
				".stories-related", ".see-also", ".link-relacionado", ".box-relacionadas",
			},
		},
		deny: []string{
			".cta-middle", ".infomoney-read-more", ".read-more", ".post__related",
			".sharing", ".share", ".social", ".banner", ".ads", ".advertisement",
			"[data-ad]", "[data-ad-slot]",
			".sponsored", ".paid-content", ".partner", ".outbrain", ".taboola",
			`[class*="srdb"]`, `[class*="rating"]`, ".review", ".score", ".meter",
			"header", "footer", "nav", "aside",
			`[class*="related"]`, `[id*="related"]`,
			`[class*="relacionad"]`, `[class*="recommend"]`,
			`[class*="veja-tambem"]`, `[class*="leia-tambem"]`, `[id*="relacionad"]`,
			`section[aria-label*="Leia"]`, `section[aria-label*="Relacionad"]`,
			`[class*="trending"]`, `[id*="trending"]`, "div.widget",
			`[class*="sidebar"]`, `[id*="sidebar"]`,
			`[class*="screen-hub"]`, `[class*="screenhub"]`,
			`[class*="popular"]`, `[id*="popular"]`,
			`[class*="newsletter"]`, `[id*="newsletter"]`,
			`[class^="ad-"]`, `[class*=" ad-"]`, `[id^="ad-"]`,
			`[class*="advert"]`, `[id*="advert"]`,
			".comments", "#comments",
			".author", ".author-box", ".post-author", ".byline", ".entry-author",
			".avatar", ".author__image", ".author-profile",
			".subscribe",
		},
		content: []string{
			"article .entry-content", "article .content", "article [itemprop='articleBody']",
			".post-content", ".single-content", ".post-body",
			"[itemprop='articleBody']", ".article-body", ".article-content",
		},
		leftovers: setOf(
			"your comment has not been saved",
			"powered by srdb",
			"advertisement",
			"publicidade",
			"continua após a publicidade",
		),
		relatedHeading: regexp.MustCompile(`(?i)(leia também|veja também|relacionad[oa]s|recomendad[oa]s|tópicos relacionados|^\s*(see also|related (articles|stories|posts|news)|more stories|you may also like)\b)`),
		nonContentWord: setOf("ad", "ads", "nav", "hub", "more", "cta", "paid", "aside"),
		nonContentPart: []string{
			"related", "trending", "sidebar", "recommend", "gallery", "carousel",
			"slideshow", "video", "playlist", "social", "share", "footer", "header",
			"navbar", "navigation", "subscribe", "newsletter", "advert", "sponsor",
			"banner", "outbrain", "taboola", "screen-hub", "screenhub", "popular",
		},
	}
}

// RelatedSelectors returns related-content selectors for host and its
// parent domains.
func (p *Patterns) RelatedSelectors(host string) []string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	var out []string
	for suffix, selectors := range p.relatedByHost {
		if hostMatches(host, suffix) {
			out = append(out, selectors...)
		}
	}
	return out
}

// DenySelectors returns selectors removed from every page.
func (p *Patterns) DenySelectors() []string {
	return p.deny
}

// ContentSelectors returns selectors likely to hold the article body.
func (p *Patterns) ContentSelectors() []string {
	return p.content
}

// IsLeftoverText reports whether text is an exact interface leftover,
// ignoring case and surrounding whitespace.
func (p *Patterns) IsLeftoverText(text string) bool {
	_, ok := p.leftovers[strings.ToLower(strings.Join(strings.Fields(text), " "))]
	return ok
}

// IsRelatedHeading reports whether a heading introduces related links.
func (p *Patterns) IsRelatedHeading(text string) bool {
	return p.relatedHeading.MatchString(text)
}

// IsNonContent reports whether a class or id value marks a non-article
// region. Short markers such as "ad" or "nav" must be whole tokens so that
// "header-load" or "canvas" are not misread; longer markers match anywhere.
func (p *Patterns) IsNonContent(classOrID string) bool {
	v := strings.ToLower(classOrID)
	if v == "" {
		return false
	}
	for _, part := range p.nonContentPart {
		if strings.Contains(v, part) {
			return true
		}
	}
	tokens := strings.FieldsFunc(v, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, tok := range tokens {
		if _, ok := p.nonContentWord[tok]; ok {
			return true
		}
	}
	return false
}

// hostMatches reports whether host equals suffix or is a subdomain of it.
func hostMatches(host, suffix string) bool {
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}

func setOf(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
