// Package version holds build information, set at link time:
//
//	go build -ldflags "-X github.com/simonhull/firebird-suite/flugzeug/internal/version.Version=v1.2.0"
package version

import "fmt"

var (
	Version = "dev"
	Commit  = ""
)

// String returns the version with the commit when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
