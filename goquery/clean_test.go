package goquery_test

import (
	"testing"

	"github.com/fwojciec/artex/goquery"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	t.Parallel()

	rules := goquery.DefaultJunkRules()

	t.Run("removes elements whose whole text is a leftover", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<p>Texto real</p>
<p>Publicidade</p>
<div><span>Continua após a publicidade</span></div>
<p>A publicidade cresceu</p>
</body></html>`)

		goquery.Clean(doc, "example.com", rules)

		assert.Equal(t, 2, doc.Find("p").Length())
		assert.Equal(t, 0, doc.Find("span").Length())
		assert.Contains(t, doc.Find("body").Text(), "A publicidade cresceu")
	})

	t.Run("removes a small container introduced by a related heading", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<p>Corpo da matéria</p>
<div class="box"><h3>Leia também</h3><ul><li><a href="/x">Outra</a></li></ul></div>
</body></html>`)

		goquery.Clean(doc, "example.com", rules)

		assert.Equal(t, 0, doc.Find("div.box").Length())
		assert.Equal(t, "Corpo da matéria", doc.Find("p").Text())
	})

	t.Run("removes only the heading and following list in a large container", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><div id="main">
<h2>Primeiro tempo</h2><p>a</p>
<h2>Segundo tempo</h2><p>b</p>
<h2>Leia também</h2><ul><li>x</li></ul>
<p>tail</p>
</div></body></html>`)

		goquery.Clean(doc, "example.com", rules)

		assert.Equal(t, 1, doc.Find("div#main").Length())
		assert.Equal(t, 2, doc.Find("h2").Length())
		assert.Equal(t, 0, doc.Find("ul").Length())
		assert.Equal(t, 3, doc.Find("p").Length())
	})

	t.Run("applies host selectors only to matching hosts", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><p>Texto</p><div class="see-also">Outras</div></body></html>`

		estadao := mustDoc(t, page)
		goquery.Clean(estadao, "www.estadao.com.br", rules)
		assert.Equal(t, 0, estadao.Find(".see-also").Length())

		other := mustDoc(t, page)
		goquery.Clean(other, "example.com", rules)
		assert.Equal(t, 1, other.Find(".see-also").Length())
	})

	t.Run("removes related-link anchors", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><p>Texto
<a class="veja-link" href="/a">Veja</a>
<a data-gtm-cta="see_more" href="/b">Mais</a>
<a href="/c">fica</a></p></body></html>`)

		goquery.Clean(doc, "example.com", rules)

		links := doc.Find("a")
		assert.Equal(t, 1, links.Length())
		assert.Equal(t, "/c", links.AttrOr("href", ""))
	})

	t.Run("removes deny-listed regions", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
<nav>menu</nav>
<div class="share">compartilhe</div>
<div class="newsletter-signup">assine</div>
<div id="ad-top">anúncio</div>
<p>ok</p>
</body></html>`)

		goquery.Clean(doc, "example.com", rules)

		assert.Equal(t, "ok", doc.Find("body").Children().Text())
	})

	t.Run("never removes the document body", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body class="has-sidebar single-related"><p>Corpo</p></body></html>`)

		goquery.Clean(doc, "example.com", rules)

		assert.Equal(t, 1, doc.Find("body").Length())
		assert.Equal(t, "Corpo", doc.Find("body p").Text())
	})
}

func TestConvertDataImages(t *testing.T) {
	t.Parallel()

	t.Run("rewrites placeholders into figures", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><div id="root">
<div data-img-url="https://cdn.example.com/a.jpg">Legenda da foto</div>
<div data-img-url="https://cdn.example.com/b.jpg"></div>
</div></body></html>`)

		n := goquery.ConvertDataImages(doc.Find("#root"))

		assert.Equal(t, 2, n)
		assert.Equal(t, 0, doc.Find("div[data-img-url]").Length())
		imgs := doc.Find("figure img")
		assert.Equal(t, 2, imgs.Length())
		assert.Equal(t, "https://cdn.example.com/a.jpg", imgs.First().AttrOr("src", ""))
		assert.Equal(t, "Legenda da foto", imgs.First().AttrOr("alt", ""))
		assert.Equal(t, "Legenda da foto", doc.Find("figcaption").Text())
		assert.Equal(t, 1, doc.Find("figcaption").Length())
	})

	t.Run("ignores placeholders with an empty url", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><div data-img-url=" ">x</div></body></html>`)

		assert.Equal(t, 0, goquery.ConvertDataImages(doc.Selection))
		assert.Equal(t, 1, doc.Find("div[data-img-url]").Length())
	})
}
