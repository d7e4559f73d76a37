// Package version provides application version and build info.
//
//nolint:revive
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the current version of the application.
	// It can be overridden by ldflags at build time.
	Version = "dev"
	// CommitHash is the git commit hash at build time.
	// It can be overridden by ldflags at build time.
	CommitHash = ""
	// BuildTime is the time when the application was built.
	BuildTime = ""
)

// Info is the machine-readable build description.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit,omitempty"`
	BuildTime  string `json:"build_time,omitempty"`
}

// Current resolves build info, falling back to VCS stamps embedded by the Go toolchain.
func Current() Info {
	info := Info{Version: Version, CommitHash: CommitHash, BuildTime: BuildTime}
	if info.CommitHash == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range bi.Settings {
				switch setting.Key {
				case "vcs.revision":
					info.CommitHash = setting.Value
				case "vcs.time":
					info.BuildTime = setting.Value
				}
			}
		}
	}
	return info
}

// GetInfo returns a formatted version string including the version and short commit hash.
func GetInfo() string {
	return Current().String()
}

func (i Info) String() string {
	res := i.Version
	if i.CommitHash != "" {
		shortHash := i.CommitHash
		if len(shortHash) > 7 {
			shortHash = shortHash[:7]
		}
		res += fmt.Sprintf(" (%s)", shortHash)
	}
	return res
}
