package version

import (
	"fmt"
	"runtime"
)

// Build information (set via ldflags during build)
var (
	// Version is the current version of scriptscan
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// Date is the build date
	Date = "unknown"
)

// GetVersion returns the current version, "dev" when unset
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns version, commit, build date and Go runtime
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		GetVersion(), Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
