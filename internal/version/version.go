// Package version provides version information for the nextver binary.
package version

import (
	_ "embed"
	"strings"
)

// VERSION contains the version from the VERSION file. It is the fallback
// when ldflags are not set (e.g. go install).
//
//go:embed VERSION
var VERSION string

// Get returns the embedded version with a "v" prefix.
func Get() string {
	return "v" + strings.TrimSpace(VERSION)
}
