package goquery

import "github.com/fwojciec/artex"

// GERule extracts articles from ge.globo.com. The body container changed
// across redesigns, so each known layout is tried in order.
func GERule() artex.SiteRule {
	return artex.SiteRule{
		Name:       "ge",
		HostSuffix: "ge.globo.com",
		ContainerSelectors: []string{
			"div.materia-conteudo",
			"article.post-content",
			"div.mc-article-body",
		},
		JunkSelectors: []string{
			"div.video-player",
			"article.content-video",
			"div.show-multicontent-playlist-container",
			"div.related-materia",
			"#gm-widget-mais-escalados-root",
			"script", "style",
		},
	}
}

// DefaultRules returns the built-in site rules.
func DefaultRules() []artex.SiteRule {
	return []artex.SiteRule{LanceRule(), GERule()}
}
