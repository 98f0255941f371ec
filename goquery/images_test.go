package goquery_test

import (
	"testing"

	"github.com/fwojciec/artex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"plain photo", "https://cdn.example.com/uploads/2024/05/gol.jpg", true},
		{"large suffix", "https://cdn.example.com/uploads/foto-800x400.jpg", true},
		{"thumbnail suffix", "https://cdn.example.com/uploads/foto-150x150.jpg", false},
		{"tall ratio", "https://cdn.example.com/uploads/foto-700x1400.jpg", false},
		{"query dimensions", "https://cdn.example.com/img.jpg?w=1200&h=630", true},
		{"small query dimensions", "https://cdn.example.com/img.jpg?width=300&height=200", false},
		{"avatar path", "https://cdn.example.com/avatar/joao.jpg", false},
		{"logo filename", "https://cdn.example.com/static/site-logo.png", false},
		{"svg", "https://cdn.example.com/static/arrow.svg", false},
		{"tracker host", "https://sb.scorecardresearch.com/p.gif", false},
		{"gravatar subdomain", "https://secure.gravatar.com/x.jpg", false},
		{"data uri", "data:image/png;base64,AAAA", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.IsValidImageURL(tt.url))
		})
	}
}

func TestCollectImages(t *testing.T) {
	t.Parallel()

	base := mustURL(t, "https://news.example.com/story")

	t.Run("collects from every source in order without duplicates", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><article>
<img src="/a.jpg">
<img src="/a.jpg/">
<img src="/hidden.jpg" aria-hidden="true">
<picture><source srcset="/b-small.jpg 320w, /b-large.jpg 1280w"><img src="/a.jpg"></picture>
<noscript><img src="/c.jpg"></noscript>
<div data-image="/d.jpg"></div>
<div style="background-image: url('/e.jpg')"></div>
<img src="/author/joao.jpg">
</article></body></html>`)

		got := goquery.CollectImages(doc.Find("article"), base)

		assert.Equal(t, []string{
			"https://news.example.com/a.jpg",
			"https://news.example.com/b-large.jpg",
			"https://news.example.com/c.jpg",
			"https://news.example.com/d.jpg",
			"https://news.example.com/e.jpg",
		}, got)
	})

	t.Run("prefers priority CDN copies and ranks them first", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><article>
<img src="https://news.example.com/other.jpg">
<img src="https://news.example.com/wordpress/photo.jpg">
<img src="https://static1.srcdn.com/wordpress/photo.jpg">
</article></body></html>`)

		candidates := goquery.CollectImageCandidates(doc.Find("article"), base)

		require.Len(t, candidates, 2)
		assert.Equal(t, "https://static1.srcdn.com/wordpress/photo.jpg", candidates[0].URL)
		assert.Equal(t, 0, candidates[0].Rank)
		assert.Equal(t, "https://news.example.com/other.jpg", candidates[1].URL)
	})

	t.Run("records declared dimensions", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><img src="/f-1200x630.jpg"></body></html>`)

		candidates := goquery.CollectImageCandidates(doc.Selection, base)

		require.Len(t, candidates, 1)
		assert.Equal(t, 1200, candidates[0].Width)
		assert.Equal(t, 630, candidates[0].Height)
		assert.Equal(t, "img", candidates[0].Source)
	})

	t.Run("does not modify the tree and is repeatable", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body><figure><img srcset="/g-1.jpg 400w, /g-2.jpg 900w"></figure></body></html>`)
		before, err := doc.Html()
		require.NoError(t, err)

		first := goquery.CollectImages(doc.Selection, base)
		second := goquery.CollectImages(doc.Selection, base)
		after, err := doc.Html()
		require.NoError(t, err)

		assert.Equal(t, []string{"https://news.example.com/g-2.jpg"}, first)
		assert.Equal(t, first, second)
		assert.Equal(t, before, after)
	})

	t.Run("returns nothing for a nil root", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.CollectImages(nil, base))
	})
}
