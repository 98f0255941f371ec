package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// matcher compiles selector. The second return value is false when the
// selector is invalid. Nothing is cached, so caller-supplied rules leave no
// state behind between extractions.
func matcher(selector string) (cascadia.Selector, bool) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	return sel, true
}

// find returns the descendants of s matching selector, or an empty
// selection when the selector does not compile.
func find(s *goquery.Selection, selector string) *goquery.Selection {
	m, ok := matcher(selector)
	if !ok {
		return s.FindNodes()
	}
	return s.FindMatcher(m)
}

// is reports whether the first node of s matches selector.
func is(s *goquery.Selection, selector string) bool {
	m, ok := matcher(selector)
	if !ok {
		return false
	}
	return s.IsMatcher(m)
}

// protected elements are never removed by junk passes, even when a broad
// class-substring selector matches them.
func protected(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "html", "head", "body":
		return true
	}
	return false
}

// attached reports whether n is still reachable from its document root.
func attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// remove detaches every node of s that is still attached and not protected.
// Returns the number of nodes removed.
func remove(s *goquery.Selection) int {
	removed := 0
	for _, n := range s.Nodes {
		if n.Parent == nil || protected(n) || !attached(n) {
			continue
		}
		n.Parent.RemoveChild(n)
		removed++
	}
	return removed
}

// removeSelectors removes every match of selectors under s.
func removeSelectors(s *goquery.Selection, selectors []string) int {
	removed := 0
	for _, selector := range selectors {
		removed += remove(find(s, selector))
	}
	return removed
}

// collapse unescapes HTML entities and collapses runs of whitespace.
func collapse(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// ownText returns the collapsed text of s.
func ownText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// absURL resolves ref against base. Returns an empty string for empty,
// data:, javascript:, or unparsable references, and for relative references
// when base is nil.
func absURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isNonHTTPLink(ref) {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// isNonHTTPLink checks if a reference uses a scheme that never points at
// fetchable content.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// parse parses raw HTML into a document.
func parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// outerHTML renders every node of s in order.
func outerHTML(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		_ = html.Render(&b, n)
	}
	return b.String()
}

// firstNonEmpty evaluates stages in order and returns the first non-empty
// result. Later stages are never evaluated once one succeeds.
func firstNonEmpty(stages ...func() string) string {
	for _, stage := range stages {
		if v := strings.TrimSpace(stage()); v != "" {
			return v
		}
	}
	return ""
}
