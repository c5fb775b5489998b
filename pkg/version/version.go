// Package version exposes build metadata stamped in at link time.
package version

// Build metadata, overridden via -ldflags at release time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
