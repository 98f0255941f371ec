package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingRegistry implements artex.SiteRegistry.
var _ artex.SiteRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SiteRegistry with logging of rule resolution.
type LoggingRegistry struct {
	next   artex.SiteRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next artex.SiteRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Lookup resolves the rule for host and logs which one applies.
func (r *LoggingRegistry) Lookup(host string) (artex.SiteRule, bool) {
	rule, ok := r.next.Lookup(host)
	name := rule.Name
	if !ok {
		name = "(generic)"
	}
	r.logger.Debug("site rule lookup",
		"host", host,
		"rule", name,
	)
	return rule, ok
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []string {
	return r.next.List()
}

// Ensure LoggingDetector implements artex.PlatformDetector.
var _ artex.PlatformDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a PlatformDetector with logging for platform detection.
type LoggingDetector struct {
	next   artex.PlatformDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next artex.PlatformDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingDetector) Detect(html string) artex.Platform {
	begin := time.Now()
	platform := d.next.Detect(html)
	d.logger.Info("platform detection",
		"platform", string(platform),
		"duration", time.Since(begin),
	)
	return platform
}
