// Package version reports build information for scratchpool binaries.
//
// The variables are set at build time using ldflags:
//
//	go build -ldflags "-X github.com/go-i2p/scratchpool/version.Version=0.3.0 \
//	    -X github.com/go-i2p/scratchpool/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "runtime"

// Version is the release version. Development builds report "dev".
var Version = "dev"

// GitCommit is the short commit hash the binary was built from.
var GitCommit = ""

// BuildTime is the UTC build timestamp in RFC 3339 form.
var BuildTime = ""

// Info is the build information in structured form.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String formats the version as "version-commit (build time)", omitting
// whichever parts are unset.
func (i Info) String() string {
	v := i.Version
	if i.GitCommit != "" {
		v += "-" + i.GitCommit
	}
	if i.BuildTime != "" {
		v += " (" + i.BuildTime + ")"
	}
	return v
}

// Full returns the full version string including commit and build time if available.
func Full() string {
	return Get().String()
}
