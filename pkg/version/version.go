// Package version holds the build version, set via ldflags:
//
//	go build -ldflags "-X github.com/lumenpedia/lumen/pkg/version.Version=v0.2.0"
package version

// Version is the release tag, or "dev" for local builds.
var Version = "dev"

// String formats the version for display.
func String() string {
	return "lumen " + Version
}
