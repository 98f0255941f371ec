package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
)

// ResolveMetadata resolves the title, excerpt, featured image, and
// structured-data object of a page. root is the located article root used
// for the last featured-image fallback; it may be nil. Every stage is
// optional: a missing or malformed source falls through to the next one,
// and total failure yields empty fields.
func ResolveMetadata(doc *goquery.Document, base *url.URL, root *goquery.Selection) artex.Metadata {
	schema, hasSchema := parseSchema(doc)
	return resolveMetadata(doc, base, root, schema, hasSchema)
}

// resolveMetadata is ResolveMetadata with the structured-data object
// already parsed, so callers can read it before the page is cleaned.
func resolveMetadata(doc *goquery.Document, base *url.URL, root *goquery.Selection, schema jsonValue, hasSchema bool) artex.Metadata {
	fromSchema := func(read func(jsonValue) string) func() string {
		return func() string {
			if !hasSchema {
				return ""
			}
			return read(schema)
		}
	}

	md := artex.Metadata{
		Title: collapse(firstNonEmpty(
			fromSchema(func(v jsonValue) string { return v.get("headline").text() }),
			fromSchema(func(v jsonValue) string { return v.get("name").text() }),
			func() string { return metaContent(doc, "og:title") },
			func() string { return doc.Find("head title").First().Text() },
		)),
		Excerpt: collapse(firstNonEmpty(
			fromSchema(func(v jsonValue) string { return v.get("description").text() }),
			func() string { return metaContent(doc, "og:description") },
			func() string { return metaContent(doc, "description") },
		)),
		FeaturedImageURL: firstNonEmpty(
			func() string { return absURL(base, metaContent(doc, "og:image")) },
			fromSchema(func(v jsonValue) string { return absURL(base, v.get("image").url()) }),
			func() string { return largestImage(root, base) },
		),
	}
	if hasSchema {
		md.Schema = schema.raw
	}
	return md
}

// FeaturedImage picks the article's representative image: the Open Graph
// image, then the structured-data image, then the largest image by declared
// area inside root. The result is absolute, or empty when nothing qualifies.
func FeaturedImage(doc *goquery.Document, base *url.URL, root *goquery.Selection) string {
	return ResolveMetadata(doc, base, root).FeaturedImageURL
}

// metaContent returns the content of the first meta tag whose property or
// name equals key.
func metaContent(doc *goquery.Document, key string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		prop := m.AttrOr("property", m.AttrOr("name", ""))
		if !strings.EqualFold(strings.TrimSpace(prop), key) {
			return true
		}
		content = strings.TrimSpace(m.AttrOr("content", ""))
		return content == ""
	})
	return content
}

// largestImage returns the image under root with the largest declared
// width times height. Images without numeric dimensions are ignored; ties
// keep the first image.
func largestImage(root *goquery.Selection, base *url.URL) string {
	if root == nil {
		return ""
	}
	best, bestArea := "", 0
	root.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := firstNonEmpty(
			func() string { return img.AttrOr("src", "") },
			func() string { return img.AttrOr("data-src", "") },
		)
		if src == "" {
			return
		}
		w, werr := strconv.Atoi(strings.TrimSpace(img.AttrOr("width", "")))
		h, herr := strconv.Atoi(strings.TrimSpace(img.AttrOr("height", "")))
		if werr != nil || herr != nil || w <= 0 || h <= 0 {
			return
		}
		if area := w * h; area > bestArea {
			if abs := absURL(base, src); abs != "" {
				best, bestArea = abs, area
			}
		}
	})
	return best
}
