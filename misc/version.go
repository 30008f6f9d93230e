// Package misc keeps program identity in a single place.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "sdgen"

// set at link time with -X
var (
	version = ""
	gitHash = ""
)

var readBuildInfo = sync.OnceValues(func() (string, string) {
	ver, hash := version, gitHash

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ver, hash
	}
	if len(ver) == 0 && info.Main.Version != "(devel)" {
		ver = info.Main.Version
	}
	if len(hash) == 0 {
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				hash = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if len(hash) > 12 {
			hash = hash[:12]
		}
		if modified && len(hash) > 0 {
			hash += "-dirty"
		}
	}
	return ver, hash
})

func GetAppName() string {
	return appName
}

// GetVersion returns program version, "dev" when unknown.
func GetVersion() string {
	if ver, _ := readBuildInfo(); len(ver) > 0 {
		return ver
	}
	return "dev"
}

// GetGitHash returns abbreviated VCS revision the binary was built from.
func GetGitHash() string {
	if _, hash := readBuildInfo(); len(hash) > 0 {
		return hash
	}
	return "unknown"
}
