package artex

// Platform identifies the publishing system that rendered a page.
type Platform string

// Platform constants.
const (
	PlatformUnknown   Platform = "unknown"
	PlatformWordPress Platform = "wordpress"
	PlatformArc       Platform = "arc"
)

// PlatformDetector identifies publishing platforms from HTML content.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}
