// Package version provides build-time version information.
package version

import "fmt"

// AppName is the user-visible application name.
const AppName = "Watermark Studio"

// AppID is the application identifier used for preferences storage.
const AppID = "io.github.watermark-studio"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", AppName, Version, GitCommit, BuildTime)
}
