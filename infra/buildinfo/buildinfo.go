// package buildinfo reports the version of sceneplay binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo of running binary.
type BuildInfo struct {
	Version    string // e.g. v0.1.0
	CommitHash string // vcs revision
	GoVersion  string
}

// Supplied by linker, e.g.
// go build -ldflags "-X github.com/mzki/puzzlescene/infra/buildinfo.version=v0.1.2 -X github.com/mzki/puzzlescene/infra/buildinfo.commitHash=###"
var (
	version    = "dev"
	commitHash = "none"
)

// Get returns BuildInfo. Values missing from the linker flags are
// filled from module information embedded by go command, if any.
func Get() BuildInfo {
	b := BuildInfo{Version: version, CommitHash: commitHash}
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFrom(&b, info)
	}
	return b
}

func fillFrom(b *BuildInfo, info *debug.BuildInfo) {
	b.GoVersion = info.GoVersion
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	if b.CommitHash == "none" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				b.CommitHash = s.Value
			}
		}
	}
}

// String returns version with commit hash, e.g. "v0.1.2 (3a4b5c)".
func (b BuildInfo) String() string {
	if b.GoVersion == "" {
		return fmt.Sprintf("%s (%s)", b.Version, b.CommitHash)
	}
	return fmt.Sprintf("%s (%s, %s)", b.Version, b.CommitHash, b.GoVersion)
}
