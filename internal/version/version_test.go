package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuild(t *testing.T, version, dirty string, main string) {
	t.Helper()
	oldV, oldD, oldRead := Version, Dirty, readBuildInfo
	Version, Dirty = version, dirty
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: main}}, true
	}
	t.Cleanup(func() {
		Version, Dirty, readBuildInfo = oldV, oldD, oldRead
	})
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		dirty   string
		main    string
		want    string
	}{
		{"ldflags", "1.2.3", "false", "v9.9.9", "1.2.3"},
		{"dirty", "1.2.3", "true", "", "1.2.3-dirty"},
		{"build info", "dev", "false", "v0.4.0", "0.4.0"},
		{"devel build", "dev", "false", "(devel)", "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.version, tt.dirty, tt.main)
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFull(t *testing.T) {
	withBuild(t, "1.0.0", "true", "")
	out := Full()
	if !strings.HasPrefix(out, "cleantext 1.0.0-dirty\n") {
		t.Errorf("Full() = %q", out)
	}
	if !strings.Contains(out, "Dirty:      yes") {
		t.Errorf("Full() should report a dirty tree: %q", out)
	}
	if Get().Version != "1.0.0" {
		t.Errorf("Get().Version = %q", Get().Version)
	}
}
