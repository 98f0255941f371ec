package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// LocateBody returns the subtree holding the article body. A lone <article>
// wins outright. Otherwise candidates come from the content selectors, or
// from every element under <body> when none match; chrome elements and
// candidates whose class or id marks non-content are skipped. Each candidate
// scores its descendant paragraphs plus figures; the highest score wins and
// ties go to the earliest candidate. When nothing scores, the whole document
// is returned.
func LocateBody(doc *goquery.Document, rules artex.JunkRules) *goquery.Selection {
	if articles := doc.Find("article"); articles.Length() == 1 {
		return articles
	}

	candidates := contentCandidates(doc.Selection, rules)
	if len(candidates) == 0 {
		candidates = doc.Find("body").Find("*").Nodes
	}

	var best *html.Node
	bestScore := 0
	for _, n := range candidates {
		if isElement(n, "header", "footer", "nav", "aside", "script", "style") {
			continue
		}
		c := doc.FindNodes(n)
		if rules.IsNonContent(c.AttrOr("class", "")) || rules.IsNonContent(c.AttrOr("id", "")) {
			continue
		}
		if score := bodyScore(c); score > bestScore {
			best, bestScore = n, score
		}
	}
	if best == nil {
		return doc.Selection
	}
	return doc.FindNodes(best)
}

// contentCandidates returns the matches of the content selectors in
// document order, without duplicates.
func contentCandidates(s *goquery.Selection, rules artex.JunkRules) []*html.Node {
	matched := make(map[*html.Node]struct{})
	for _, selector := range rules.ContentSelectors() {
		for _, n := range find(s, selector).Nodes {
			matched[n] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return nil
	}
	out := make([]*html.Node, 0, len(matched))
	for _, n := range s.Find("*").Nodes {
		if _, ok := matched[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

func bodyScore(s *goquery.Selection) int {
	return s.Find("p").Length() + s.Find("figure").Length()
}
