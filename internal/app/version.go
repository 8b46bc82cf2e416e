package app

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/heartmarshall/credit-disputer/internal/app.Version=v1.2.0".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion reports the release tag plus the VCS revision and build time.
// Missing ldflags values fall back to what the Go toolchain embedded.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && commit == "":
					commit = s.Value
				case s.Key == "vcs.time" && built == "":
					built = s.Value
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(Version)
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		b.WriteString(" commit=" + commit)
	}
	if built != "" {
		b.WriteString(" built=" + built)
	}
	return b.String()
}
