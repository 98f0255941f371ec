package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// leftoverCarriers are the elements inspected for exact leftover text.
const leftoverCarriers = "p, span, div, li, small, strong, em, figcaption, section, h1, h2, h3, h4, h5, h6"

// Clean removes boilerplate from doc in place: interface leftovers,
// heading-introduced related sections, host-specific related widgets,
// related-link anchors, and everything on the deny list. host selects
// host-specific selectors and may carry a "www." prefix. Clean never fails;
// passes skip nodes already detached by earlier passes.
func Clean(doc *goquery.Document, host string, rules artex.JunkRules) {
	removeLeftovers(doc.Selection, rules)
	removeRelatedSections(doc.Selection, rules)
	removeSelectors(doc.Selection, rules.RelatedSelectors(strings.TrimPrefix(strings.ToLower(host), "www.")))
	removeRelatedAnchors(doc.Selection)
	removeSelectors(doc.Selection, rules.DenySelectors())
}

// removeLeftovers removes elements whose whole text is a known leftover.
func removeLeftovers(s *goquery.Selection, rules artex.JunkRules) {
	find(s, leftoverCarriers).Each(func(_ int, el *goquery.Selection) {
		if !attached(el.Get(0)) {
			return
		}
		if rules.IsLeftoverText(el.Text()) {
			remove(el)
		}
	})
}

// removeRelatedSections handles "read also" headings. A small enclosing
// container (at most two headings) goes entirely; otherwise only the heading
// and a directly following list or block go. Headings are visited last to
// first so nested containers are resolved before their parents.
func removeRelatedSections(s *goquery.Selection, rules artex.JunkRules) {
	headings := slices.Clone(find(s, headingSelector).Nodes)
	slices.Reverse(headings)

	for _, n := range headings {
		if !attached(n) {
			continue
		}
		h := s.FindNodes(n)
		if !rules.IsRelatedHeading(ownText(h)) {
			continue
		}

		container := h.Closest("section, aside, div")
		if container.Length() > 0 && find(container, headingSelector).Length() <= 2 {
			remove(container)
			continue
		}

		next := h.Next()
		if next.Length() > 0 && isElement(next.Get(0), "div", "ul", "ol", "section") {
			remove(next)
		}
		remove(h)
	}
}

// removeRelatedAnchors removes anchors marked as related-content links by
// class or analytics attribute.
func removeRelatedAnchors(s *goquery.Selection) {
	markers := []string{"relacion", "related", "leia", "veja"}
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		class := strings.ToLower(a.AttrOr("class", ""))
		cta := a.AttrOr("data-gtm-cta", "")
		related := cta == "related" || cta == "see_more"
		for _, m := range markers {
			if strings.Contains(class, m) {
				related = true
				break
			}
		}
		if related {
			remove(a)
		}
	})
}

// ConvertDataImages rewrites div[data-img-url] placeholders under root into
// figure elements so that the image survives body extraction. The div's text
// becomes the caption and the alt text.
func ConvertDataImages(root *goquery.Selection) int {
	converted := 0
	root.Find("div[data-img-url]").Each(func(_ int, div *goquery.Selection) {
		src := strings.TrimSpace(div.AttrOr("data-img-url", ""))
		if src == "" || !attached(div.Get(0)) {
			return
		}
		caption := ownText(div)

		fig := &html.Node{Type: html.ElementNode, Data: "figure"}
		img := &html.Node{Type: html.ElementNode, Data: "img", Attr: []html.Attribute{{Key: "src", Val: src}}}
		fig.AppendChild(img)
		if caption != "" {
			img.Attr = append(img.Attr, html.Attribute{Key: "alt", Val: caption})
			fc := &html.Node{Type: html.ElementNode, Data: "figcaption"}
			fc.AppendChild(&html.Node{Type: html.TextNode, Data: caption})
			fig.AppendChild(fc)
		}

		n := div.Get(0)
		n.Parent.InsertBefore(fig, n)
		n.Parent.RemoveChild(n)
		converted++
	})
	return converted
}

// isElement reports whether n is an element with one of the given tags.
func isElement(n *html.Node, tags ...string) bool {
	return n != nil && n.Type == html.ElementNode && slices.Contains(tags, n.Data)
}
