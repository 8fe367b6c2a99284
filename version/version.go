package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/3nids/CadInput/version.Version=..." at release time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string. Development builds fall back to
// the module version recorded by the go tool, if any.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// GetFullVersion returns the version together with commit and build date
func GetFullVersion() string {
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), commit, BuildDate)
}
