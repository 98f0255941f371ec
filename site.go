package artex

// SiteRule describes how to extract articles from one publisher.
// Rules are static and never modified once a registry is built.
type SiteRule struct {
	// Name identifies the rule in logs and in Article.Strategy.
	Name string

	// HostSuffix matches the request host and any of its subdomains.
	HostSuffix string

	// ContainerSelectors are tried in order; the first match holds the body.
	ContainerSelectors []string

	// JunkSelectors are removed from inside the container.
	JunkSelectors []string

	// AllowSelector, when set, rebuilds the body from only the matching
	// elements of the container, in document order.
	AllowSelector string
}

// SiteRegistry resolves the rule that applies to a host.
type SiteRegistry interface {
	// Lookup returns the rule whose HostSuffix matches host.
	// The second return value is false when no rule applies.
	Lookup(host string) (SiteRule, bool)

	// List returns the names of all registered rules.
	List() []string
}

// JunkRules supplies the pattern tables used to recognize boilerplate.
// Swapping the implementation changes what counts as junk without
// touching the extraction pipeline.
type JunkRules interface {
	// RelatedSelectors returns host-specific selectors for related-content
	// widgets. host has no "www." prefix.
	RelatedSelectors(host string) []string

	// DenySelectors returns selectors removed from every page.
	DenySelectors() []string

	// ContentSelectors returns selectors likely to hold the article body.
	ContentSelectors() []string

	// IsLeftoverText reports whether text is a known interface leftover
	// such as an unsaved-comment notice.
	IsLeftoverText(text string) bool

	// IsRelatedHeading reports whether a heading introduces a
	// "read also" style block.
	IsRelatedHeading(text string) bool

	// IsNonContent reports whether a class or id value marks a
	// non-article region.
	IsNonContent(classOrID string) bool
}
