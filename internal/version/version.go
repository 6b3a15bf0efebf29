package version

import "fmt"

// Build metadata, injected with -ldflags at release time. Source builds
// report "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the release version
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns the version with build metadata, shown by
// `ailint version --verbose`
func GetFullVersion() string {
	return fmt.Sprintf("ailint %s (commit %s, built %s)", GetVersion(), Commit, Date)
}
