package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "shaderlens 1.2.3"},
		{"1.2.3", "abc123def4567890", "", "shaderlens 1.2.3 (abc123def456)"},
		{"1.2.3", "abc", "2024-01-15T10:30:00Z", "shaderlens 1.2.3 (abc) built 2024-01-15T10:30:00Z"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })
	color.NoColor = true

	for _, v := range []string{"0.1.0-dev", "2.0.1", "nightly"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q without color, want %q", got, v)
		}
	}
}
