package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// DefaultMergeLimit is the number of images MergeImages adds when the
// caller passes a non-positive limit.
const DefaultMergeLimit = 6

// MergeImages adds up to limit images from images that the body does not
// already show. New images are inserted as bare figures after the paragraph
// mergeAnchor picks, in order, or appended when there is none. Images
// already referenced by an img src or srcset are skipped.
func MergeImages(contentHTML string, images []string, limit int) string {
	if limit <= 0 {
		limit = DefaultMergeLimit
	}
	doc, err := parse(contentHTML)
	if err != nil {
		return contentHTML
	}
	body := doc.Find("body")

	present := make(map[string]struct{})
	body.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src := artex.ImageKey(img.AttrOr("src", "")); src != "" {
			present[src] = struct{}{}
		}
		for _, part := range strings.Split(img.AttrOr("srcset", ""), ",") {
			if fields := strings.Fields(part); len(fields) > 0 {
				present[artex.ImageKey(fields[0])] = struct{}{}
			}
		}
	})

	var add []string
	for _, u := range images {
		key := artex.ImageKey(u)
		if key == "" {
			continue
		}
		if _, ok := present[key]; ok {
			continue
		}
		present[key] = struct{}{}
		add = append(add, strings.TrimSpace(u))
		if len(add) >= limit {
			break
		}
	}
	if len(add) == 0 {
		return contentHTML
	}

	root := body.Get(0)
	after := mergeAnchor(body)
	for _, u := range add {
		fig := &html.Node{Type: html.ElementNode, Data: "figure"}
		fig.AppendChild(&html.Node{Type: html.ElementNode, Data: "img", Attr: []html.Attribute{{Key: "src", Val: u}}})
		if after == nil {
			root.AppendChild(fig)
			continue
		}
		after.Parent.InsertBefore(fig, after.NextSibling)
		after = fig
	}

	out, err := body.Html()
	if err != nil {
		return contentHTML
	}
	return out
}

// mergeAnchor returns the paragraph new figures follow: the first paragraph
// directly under body, else the first one outside quotes, lists, tables,
// figures and asides. Returns nil when there is none.
func mergeAnchor(body *goquery.Selection) *html.Node {
	if p := body.ChildrenFiltered("p").First(); p.Length() > 0 {
		return p.Get(0)
	}
	for _, n := range body.Find("p").Nodes {
		nested := false
		for a := n.Parent; a != nil && !isElement(a, "body"); a = a.Parent {
			if isElement(a, "blockquote", "li", "ul", "ol", "table", "figure", "aside") {
				nested = true
				break
			}
		}
		if !nested {
			return n
		}
	}
	return nil
}
