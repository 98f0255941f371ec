package goquery

import "github.com/fwojciec/artex"

// LanceRule extracts articles from lance.com.br. The article body is
// rebuilt from paragraphs, subheadings, image figures, and tweet embeds;
// the desktop sidebar and icon figures are dropped.
func LanceRule() artex.SiteRule {
	return artex.SiteRule{
		Name:               "lance",
		HostSuffix:         "lance.com.br",
		ContainerSelectors: []string{"article"},
		JunkSelectors: []string{
			`aside.tab-m\:hidden`,
			"script", "style",
		},
		AllowSelector: "p, h2, figure, blockquote.twitter-tweet",
	}
}
