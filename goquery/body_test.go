package goquery_test

import (
	"testing"

	"github.com/fwojciec/artex/goquery"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestLocateBody(t *testing.T) {
	t.Parallel()

	rules := goquery.DefaultJunkRules()

	t.Run("returns a lone article", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><div class="article-body"><p>a</p><p>b</p></div><article id="x"><p>c</p></article></body></html>`)

		got := goquery.LocateBody(doc, rules)

		assert.Equal(t, "x", got.AttrOr("id", ""))
	})

	t.Run("picks the content candidate with the most paragraphs and figures", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<div class="post-content"><p>1</p><p>2</p></div>
<div class="article-body"><p>1</p><p>2</p><p>3</p><p>4</p><figure></figure></div>
</body></html>`)

		got := goquery.LocateBody(doc, rules)

		assert.True(t, got.HasClass("article-body"))
	})

	t.Run("ties go to the earliest candidate", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<div class="post-body" id="first"><p>1</p><p>2</p></div>
<div class="article-content" id="second"><p>1</p><p>2</p></div>
</body></html>`)

		got := goquery.LocateBody(doc, rules)

		assert.Equal(t, "first", got.AttrOr("id", ""))
	})

	t.Run("skips chrome and non-content regions when scanning every element", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<nav><p>1</p><p>2</p><p>3</p><p>4</p></nav>
<div class="related-list"><p>1</p><p>2</p><p>3</p><p>4</p></div>
<main id="story"><p>1</p><p>2</p><p>3</p></main>
</body></html>`)

		got := goquery.LocateBody(doc, rules)

		assert.Equal(t, "story", got.AttrOr("id", ""))
	})

	t.Run("returns the whole document when nothing scores", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><div>just text</div></body></html>`)

		got := goquery.LocateBody(doc, rules)

		assert.Equal(t, html.DocumentNode, got.Get(0).Type)
	})
}
