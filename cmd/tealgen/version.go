package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the tealgen release.
//
// A binary built by `go install github.com/broady/tealgen/cmd/tealgen@v0.1.0`
// reports that module version. A build from a checkout reports the VERSION
// file as "devel-0.1.0", followed by "+<revision>" and "-dirty" when the VCS
// stamp records them.
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return versionFrom(strings.TrimSpace(embeddedVersion), info)
}

func versionFrom(base string, info *debug.BuildInfo) string {
	if info == nil {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				revision = s.Value[:7]
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	v := "devel-" + base
	if revision != "" {
		v += "+" + revision
		if modified {
			v += "-dirty"
		}
	}
	return v
}
