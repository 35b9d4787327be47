// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Onair is the canonical application identifier used for filesystem paths and CLI branding.
	Onair = "onair"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every catalog and episode download request.
	UserAgent = Onair + "/" + Version + " (+https://github.com/onair-cli/onair)"
)

// Build metadata, injected via -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
