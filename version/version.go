// Package version carries build-time version information, populated via
// -ldflags at release builds.
package version

import "runtime"

var (
	// GitRelease is the release tag
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from
	GitCommit = "unknown"

	// GitCommitDate is the commit date
	GitCommitDate = "unknown"
)

// GoInfo is the Go toolchain the binary was built with
var GoInfo = runtime.Version()
