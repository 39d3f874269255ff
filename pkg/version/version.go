// Package version exposes the build version of foodtruckfinder.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/rshade/foodtruckfinder/pkg/version.version=1.2.3"
//
//nolint:gochecknoglobals // Set via ldflags.
var version = "0.1.0-dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}

// IsRelease reports whether the version is a valid semantic version without a
// prerelease suffix.
func IsRelease() bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return v.Prerelease() == ""
}

// UserAgent returns the HTTP User-Agent sent to upstream APIs.
func UserAgent() string {
	return "foodtruckfinder/" + version
}
