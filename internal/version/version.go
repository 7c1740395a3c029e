// Package version reports which tmux-overlay build is running.
//
// Release builds set Version, Commit and Date with ldflags:
//
//	-X github.com/cristianoliveira/tmux-overlay/internal/version.Version=1.2.0
//
// Builds without them (go install, go run) fall back to the module version and
// VCS stamps the Go toolchain embeds.
package version

import (
	"runtime/debug"
	"strings"
)

const (
	devel   = "development"
	unknown = "unknown"
)

var (
	// Version is the release version.
	Version = devel
	// Commit is the git commit hash.
	Commit = unknown
	// Date is the build time, RFC 3339.
	Date = unknown
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running build.
type Info struct {
	Version string
	Commit  string
	Date    string
	// Dirty is set when the binary was built from a modified work tree.
	Dirty bool
}

// Get merges the ldflags values with the embedded build info. Values set
// with ldflags win.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == devel && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown && s.Value != "" {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.Date == unknown && s.Value != "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String returns the version with the commit appended when one is known,
// e.g. "1.2.0+abc1234" or "development+abc1234-dirty".
func (i Info) String() string {
	if i.Commit == unknown || i.Commit == "" {
		return i.Version
	}
	s := i.Version + "+" + i.Commit
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// String is Get().String().
func String() string {
	return Get().String()
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
