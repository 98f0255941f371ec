package mock

import "github.com/fwojciec/artex"

var (
	_ artex.SiteRegistry     = (*SiteRegistry)(nil)
	_ artex.PlatformDetector = (*PlatformDetector)(nil)
)

// SiteRegistry is a mock implementation of artex.SiteRegistry.
type SiteRegistry struct {
	LookupFn func(host string) (artex.SiteRule, bool)
	ListFn   func() []string
}

func (r *SiteRegistry) Lookup(host string) (artex.SiteRule, bool) {
	return r.LookupFn(host)
}

func (r *SiteRegistry) List() []string {
	return r.ListFn()
}

// PlatformDetector is a mock implementation of artex.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) artex.Platform
}

func (d *PlatformDetector) Detect(html string) artex.Platform {
	return d.DetectFn(html)
}
