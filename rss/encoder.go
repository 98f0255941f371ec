// Package rss encodes synthetic feeds as RSS 2.0 documents.
package rss

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/artex"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

// Ensure Encoder implements artex.FeedEncoder.
var _ artex.FeedEncoder = (*Encoder)(nil)

// Encoder writes feeds as RSS 2.0 with an atom:link self reference.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeFeed writes feed to w. Every item carries the build time as its
// publication date since listing pages do not date their links.
func (e *Encoder) EncodeFeed(w io.Writer, feed *artex.Feed) error {
	if feed == nil {
		return artex.Errorf(artex.EINVALID, "feed required")
	}
	if feed.Link == "" {
		return artex.Errorf(artex.EINVALID, "feed link required")
	}

	built := feed.BuiltAt
	if built.IsZero() {
		built = time.Now()
	}
	stamp := built.UTC().Format(time.RFC1123Z)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:atom", atomNamespace)

	channel := rss.CreateElement("channel")
	setCData(channel.CreateElement("title"), feed.Title)
	channel.CreateElement("link").SetText(feed.Link)
	setCData(channel.CreateElement("description"), feed.Description)
	channel.CreateElement("lastBuildDate").SetText(stamp)

	self := channel.CreateElement("atom:link")
	self.CreateAttr("href", feed.Link)
	self.CreateAttr("rel", "self")
	self.CreateAttr("type", "application/rss+xml")

	for _, link := range feed.Items {
		item := channel.CreateElement("item")
		setCData(item.CreateElement("title"), link.Title)
		item.CreateElement("link").SetText(link.URL)
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(link.URL)
		item.CreateElement("pubDate").SetText(stamp)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}

// setCData stores text as a CDATA section. Text that would terminate the
// section early is stored escaped instead.
func setCData(el *etree.Element, text string) {
	if strings.Contains(text, "]]>") {
		el.SetText(text)
		return
	}
	el.SetCData(text)
}
