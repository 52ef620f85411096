package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withBuildInfo(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"bare", "1.2.3", "", "", "tokstream 1.2.3"},
		{"commit", "1.2.3", "abc123", "", "tokstream 1.2.3 (commit abc123)"},
		{"all", "0.1.0-dev", "abc123", "2024-01-15", "tokstream 0.1.0-dev (commit abc123, built 2024-01-15)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			if got := Line(false); got != tt.want {
				t.Errorf("Line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	withBuildInfo(t, "1.2.3-rc.1", "", "")
	got := Colored()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored = %q, want escape codes", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored = %q, want plain pre-release suffix", got)
	}

	withBuildInfo(t, "dev", "", "")
	if got := Colored(); got != "dev" {
		t.Errorf("Colored = %q, want unparsed version unchanged", got)
	}
}
