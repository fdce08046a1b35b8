// Package version exposes the cardsmith build version.
package version

// version is bumped on release.
const version = "0.3.1"

// Get returns the current version.
func Get() string {
	return version
}
