package goquery

import (
	"slices"
	"strings"

	"github.com/fwojciec/artex"
)

var _ artex.SiteRegistry = (*Registry)(nil)

// Registry maps host suffixes to site rules. It is built once and never
// modified, so a single Registry may be shared by concurrent extractions.
type Registry struct {
	rules map[string]artex.SiteRule
	names []string
}

// NewRegistry creates a Registry from rules. Suffixes are normalized to
// lowercase without a leading "www."; a later rule with the same suffix
// replaces an earlier one.
func NewRegistry(rules ...artex.SiteRule) *Registry {
	r := &Registry{rules: make(map[string]artex.SiteRule, len(rules))}
	for _, rule := range rules {
		suffix := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(rule.HostSuffix)), "www.")
		if suffix == "" {
			continue
		}
		rule.HostSuffix = suffix
		rule.ContainerSelectors = slices.Clone(rule.ContainerSelectors)
		rule.JunkSelectors = slices.Clone(rule.JunkSelectors)
		r.rules[suffix] = rule
	}
	for _, rule := range r.rules {
		r.names = append(r.names, rule.Name)
	}
	slices.Sort(r.names)
	return r
}

// Lookup returns the rule with the longest suffix matching host on a label
// boundary, so "ge.globo.com" matches "globo.com" but "notglobo.com" does
// not.
func (r *Registry) Lookup(host string) (artex.SiteRule, bool) {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	for host != "" {
		if rule, ok := r.rules[host]; ok {
			return rule, true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return artex.SiteRule{}, false
}

// List returns the names of all registered rules in sorted order.
func (r *Registry) List() []string {
	return slices.Clone(r.names)
}
