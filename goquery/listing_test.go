package goquery_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	const listURL = "https://www.example.com/esportes"

	t.Run("prefers structured data", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{"@type": "ItemList", "itemListElement": [
  {"@type": "ListItem", "url": "/esportes/a?utm_source=home#top", "name": "Matéria A"},
  {"@type": "ListItem", "item": {"url": "https://www.example.com/esportes/b", "name": "Matéria B"}},
  {"@type": "ListItem", "url": "/esportes/c"}
]}</script>
<script type="application/ld+json">[{"@type": "NewsArticle", "headline": "Matéria A de novo", "url": "https://www.example.com/esportes/a"}]</script>
</head><body><a href="/esportes/z">Z</a></body></html>`

		links, err := goquery.NewListingExtractor().ExtractLinks(html, listURL, nil, 0)

		require.NoError(t, err)
		assert.Equal(t, []artex.ListingLink{
			{Title: "Matéria A", URL: "https://www.example.com/esportes/a", Source: goquery.SourceJSONLD},
			{Title: "Matéria B", URL: "https://www.example.com/esportes/b", Source: goquery.SourceJSONLD},
		}, links)
	})

	t.Run("falls back to the first selector that yields links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="feed">
  <a href="/esportes/1?gclid=x&amp;page=2">  Primeira
     matéria </a>
  <a href="#comentarios">Comentários</a>
  <a href="javascript:void(0)">Menu</a>
  <a href="https://other.com/x">Externa</a>
  <a href="https://example.com/esportes/2">Segunda</a>
  <a href="/esportes/1?page=2&amp;utm_medium=x">Duplicada</a>
  <a href="/esportes">Listagem</a>
  <a href="/esportes/3"></a>
</div>
<h2><a href="/esportes/9">Manchete</a></h2>
</body></html>`

		links, err := goquery.NewListingExtractor().ExtractLinks(html, listURL, []string{"ul.missing a", "div.feed a", "h2 a"}, 0)

		require.NoError(t, err)
		assert.Equal(t, []artex.ListingLink{
			{Title: "Primeira matéria", URL: "https://www.example.com/esportes/1?page=2", Source: "div.feed a"},
			{Title: "Segunda", URL: "https://example.com/esportes/2", Source: "div.feed a"},
		}, links)
	})

	t.Run("uses every anchor without selectors and applies the limit", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/a">A</a><a href="/b">B</a><a href="/c">C</a></body></html>`

		links, err := goquery.NewListingExtractor().ExtractLinks(html, listURL, nil, 2)

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://www.example.com/a", links[0].URL)
		assert.Equal(t, "a", links[0].Source)
	})

	t.Run("returns no links for an empty page", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewListingExtractor().ExtractLinks(`<html></html>`, listURL, nil, 0)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("returns EINVALID for a relative listing URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewListingExtractor().ExtractLinks(`<a href="/a">A</a>`, "/esportes", nil, 0)

		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	})
}
