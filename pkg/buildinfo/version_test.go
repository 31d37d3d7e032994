package buildinfo

import (
	"strings"
	"testing"
)

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestShort(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"Dev", "dev", "none", "dev"},
		{"EmptyCommit", "v1.0.0", "", "v1.0.0"},
		{"LongCommit", "v1.0.0", "a1b2c3d4e5f6", "v1.0.0 (a1b2c3d)"},
		{"ShortCommit", "v1.0.0", "abc", "v1.0.0 (abc)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, "unknown")
			if got := Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringAndTemplate(t *testing.T) {
	setBuild(t, "v0.3.0", "deadbeef", "2026-01-02T03:04:05Z")

	s := String()
	for _, want := range []string{"version: v0.3.0", "commit: deadbeef", "built: 2026-01-02T03:04:05Z"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} version v0.3.0\n") {
		t.Errorf("Template() = %q", tpl)
	}
	if info := Get(); info != (Info{Version: "v0.3.0", Commit: "deadbeef", Date: "2026-01-02T03:04:05Z"}) {
		t.Errorf("Get() = %+v", info)
	}
}
