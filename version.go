// Package remindr is a block-based note editor for the terminal. The
// document model lives in document, the inline text engine in richtext, the
// Bubble Tea field in editor, and persistence in store and session.
package remindr

import (
	_ "embed"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release version without a leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	GoVersion string
	Revision  string
	Modified  bool
}

// ReadBuildInfo combines the embedded release version with the VCS stamp
// the Go toolchain records, when there is one.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func (b BuildInfo) String() string {
	out := b.Version
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if b.Modified {
			rev += "-dirty"
		}
		out += fmt.Sprintf(" (%s)", rev)
	}
	if b.GoVersion != "" {
		out += " " + b.GoVersion
	}
	return out
}
