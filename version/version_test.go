package version

import (
	"runtime"
	"testing"
)

func TestVersion_Default(t *testing.T) {
	// Version may be set by ldflags in CI, so just check it's not empty
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestFull(t *testing.T) {
	origVersion := Version
	origCommit := GitCommit
	origBuildTime := BuildTime
	defer func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		want      string
	}{
		{"version only", "1.0.0", "", "", "1.0.0"},
		{"with commit", "1.0.0", "abc1234", "", "1.0.0-abc1234"},
		{"with build time", "1.0.0", "", "2026-01-01T00:00:00Z", "1.0.0 (2026-01-01T00:00:00Z)"},
		{"all fields", "2.1.0", "def5678", "2026-06-15T12:30:00Z", "2.1.0-def5678 (2026-06-15T12:30:00Z)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			GitCommit = tt.commit
			BuildTime = tt.buildTime

			if got := Full(); got != tt.want {
				t.Errorf("Full() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Get().Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Get().GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.String() != Full() {
		t.Errorf("Info.String() = %q, want %q", info.String(), Full())
	}
}
