// Package version holds build metadata injected via ldflags.
package version

import "fmt"

// Service is the name attached to every log entry and used as the CLI command name.
const Service = "leadscout"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build as "dev (commit unknown, built unknown)".
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
