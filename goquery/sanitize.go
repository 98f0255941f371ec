package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// forbiddenTags never survive sanitizing.
const forbiddenTags = "script, style, noscript, form, input, button, select, option, textarea, object, embed, svg, canvas, link, meta"

// infoboxLabels are technical-metadata labels found in film and series
// infoboxes. A container carrying two or more of them is an infobox.
var infoboxLabels = []string{
	"release date", "runtime", "director", "directors", "writer", "writers",
	"producer", "producers", "cast",
}

var (
	creditPrefixes = []string{"crédito:", "credito:", "fonte:", "credit:"}

	imagePlaceholderLine = regexp.MustCompile(`(?im)^[ \t]*\[?(?:Imagem|Image)\b[^\n<]*?\]?[ \t]*$`)
	bracketPlaceholder   = regexp.MustCompile(`(?i)^\[(?:Imagem|Image)\b[^\]]*\]$`)
	taxonomyURL          = regexp.MustCompile(`(?i)^https?://[^\s<>]+/(?:tag|categoria|category)/[a-z0-9\-_/]+/?$`)
)

// Sanitize normalizes extracted article HTML: it removes leftover text,
// infoboxes, credit lines, forbidden tags, event handler attributes, and
// javascript: URLs; replaces YouTube iframes with a paragraph holding the
// watch URL and drops every other iframe; strips image placeholders and
// paragraphs that hold only a bare taxonomy link; and finally drops the
// empty figures and paragraphs left behind. Sanitize is idempotent.
func Sanitize(contentHTML string, rules artex.JunkRules) string {
	if strings.TrimSpace(contentHTML) == "" {
		return ""
	}
	doc, err := parse(contentHTML)
	if err != nil {
		return contentHTML
	}
	body := doc.Find("body")

	stripForbidden(body)
	removeLabelBlocks(body, rules)
	removeInfoboxes(body)
	removeCredits(body)
	removeArtifacts(body)
	normalizeIframes(body)
	normalizeFigures(body)
	removeEmptyParagraphs(body)

	out, err := body.Html()
	if err != nil {
		return contentHTML
	}
	return strings.TrimSpace(out)
}

// stripForbidden removes forbidden elements, on* attributes, and
// javascript: links.
func stripForbidden(s *goquery.Selection) {
	remove(find(s, forbiddenTags))
	for _, n := range s.Find("*").Nodes {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if strings.HasPrefix(key, "on") {
				continue
			}
			if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	}
}

// removeLabelBlocks removes small elements holding only leftover text or a
// lone infobox label.
func removeLabelBlocks(s *goquery.Selection, rules artex.JunkRules) {
	s.Find("p, li, span, h3, h4, dt, dd").Each(func(_ int, el *goquery.Selection) {
		if !attached(el.Get(0)) {
			return
		}
		text := ownText(el)
		if text == "" {
			return
		}
		if rules.IsLeftoverText(text) || isLabel(strings.TrimSpace(strings.TrimSuffix(text, ":"))) {
			remove(el)
		}
	})
}

func isLabel(s string) bool {
	s = strings.ToLower(s)
	for _, l := range infoboxLabels {
		if s == l {
			return true
		}
	}
	return false
}

// labelOf returns the infobox label a text line starts with, either as the
// whole line or followed by a colon.
func labelOf(line string) string {
	l := strings.ToLower(strings.TrimSpace(line))
	for _, label := range infoboxLabels {
		if l == label || strings.HasPrefix(l, label+":") || strings.HasPrefix(l, label+" :") {
			return label
		}
	}
	return ""
}

// countLabels returns the number of distinct infobox labels in the text
// lines under n.
func countLabels(n *html.Node) int {
	found := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, line := range strings.Split(n.Data, "\n") {
				if label := labelOf(line); label != "" {
					found[strings.TrimSuffix(label, "s")] = struct{}{}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return len(found)
}

// removeInfoboxes removes the innermost containers that carry at least two
// distinct infobox labels.
func removeInfoboxes(s *goquery.Selection) {
	var qualifying []*html.Node
	s.Find("div, section, aside, ul, ol, dl, table").Each(func(_ int, el *goquery.Selection) {
		if countLabels(el.Get(0)) >= 2 {
			qualifying = append(qualifying, el.Get(0))
		}
	})
	for _, n := range qualifying {
		innermost := true
		for _, other := range qualifying {
			if other != n && contains(n, other) {
				innermost = false
				break
			}
		}
		if innermost && attached(n) {
			n.Parent.RemoveChild(n)
		}
	}
}

// contains reports whether descendant is strictly inside ancestor.
func contains(ancestor, descendant *html.Node) bool {
	for p := descendant.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// removeCredits removes photo credit and source lines.
func removeCredits(s *goquery.Selection) {
	s.Find("figcaption, p, span").Each(func(_ int, el *goquery.Selection) {
		t := strings.ToLower(ownText(el))
		for _, prefix := range creditPrefixes {
			if strings.HasPrefix(t, prefix) {
				remove(el)
				return
			}
		}
	})
}

// removeArtifacts removes image placeholder paragraphs, bare placeholder
// lines between blocks, and paragraphs that hold only a bare link to a tag
// or category page.
func removeArtifacts(s *goquery.Selection) {
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := ownText(p)
		if bracketPlaceholder.MatchString(text) {
			remove(p)
			return
		}
		if !taxonomyURL.MatchString(text) {
			return
		}
		if p.Children().Length() == 0 || (p.Children().Length() == 1 && p.Children().Is("a")) {
			remove(p)
		}
	})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && isElement(n, "body", "div", "section", "article") && strings.Contains(c.Data, "Imag") {
				c.Data = imagePlaceholderLine.ReplaceAllString(c.Data, "")
			}
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
}

// normalizeIframes replaces YouTube iframes with a watch URL paragraph and
// removes every other iframe. An iframe inside a paragraph never produces a
// nested paragraph: a paragraph holding only the iframe is rewritten to the
// URL, and one with other content gets the URL paragraph after it.
func normalizeIframes(s *goquery.Selection) {
	s.Find("iframe").Each(func(_ int, f *goquery.Selection) {
		src := firstAttr(f, "src", "data-src")
		id := ""
		if src != "" && !strings.Contains(src, "URL_DO_EMBED_AQUI") {
			id = YouTubeID(src)
		}
		if id == "" {
			remove(f)
			return
		}
		n := f.Get(0)
		if n.Parent == nil {
			return
		}
		watch := &html.Node{Type: html.TextNode, Data: artex.NewVideo(id).WatchURL}

		outer := enclosingParagraph(n)
		if outer == nil {
			p := &html.Node{Type: html.ElementNode, Data: "p"}
			p.AppendChild(watch)
			n.Parent.InsertBefore(p, n)
			n.Parent.RemoveChild(n)
			return
		}

		n.Parent.RemoveChild(n)
		op := goquery.NewDocumentFromNode(outer).Selection
		if strings.TrimSpace(op.Text()) == "" && op.Find("img, picture, video, audio, iframe").Length() == 0 {
			for c := outer.FirstChild; c != nil; c = outer.FirstChild {
				outer.RemoveChild(c)
			}
			outer.AppendChild(watch)
			return
		}
		p := &html.Node{Type: html.ElementNode, Data: "p"}
		p.AppendChild(watch)
		outer.Parent.InsertBefore(p, outer.NextSibling)
	})
}

// enclosingParagraph returns the nearest p ancestor of n, or nil.
func enclosingParagraph(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, "p") {
			return p
		}
		if isElement(p, "body") {
			return nil
		}
	}
	return nil
}

// normalizeFigures unwraps figures that only hold a watch URL paragraph and
// removes figures left with neither media nor text.
func normalizeFigures(s *goquery.Selection) {
	s.Find("figure").Each(func(_ int, fig *goquery.Selection) {
		if fig.Find("img, picture, video, audio, iframe, blockquote").Length() > 0 {
			return
		}
		ps := fig.Find("p")
		if ps.Length() == 1 && YouTubeID(ownText(ps)) != "" && ownText(ps) == ownText(fig) {
			n := fig.Get(0)
			pn := ps.Get(0)
			pn.Parent.RemoveChild(pn)
			n.Parent.InsertBefore(pn, n)
			n.Parent.RemoveChild(n)
			return
		}
		if ownText(fig) == "" {
			remove(fig)
		}
	})
}

// removeEmptyParagraphs removes paragraphs without text or media.
func removeEmptyParagraphs(s *goquery.Selection) {
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if strings.TrimSpace(p.Text()) != "" {
			return
		}
		if p.Find("img, picture, video, iframe").Length() > 0 {
			return
		}
		remove(p)
	})
}
