package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit := Version, GitCommit
	return func() {
		Version = origVersion
		GitCommit = origCommit
	}
}

func TestGetUsesBuildVariables(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234def"

	got := Get()
	if got.Version != "1.2.0" {
		t.Errorf("expected version '1.2.0', got %q", got.Version)
	}
	if got.GitCommit != "abc1234" {
		t.Errorf("expected commit truncated to 7 chars, got %q", got.GitCommit)
	}
}

func TestShort(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"

	if got := Short(); !strings.HasPrefix(got, "1.2.0-abc1234") {
		t.Errorf("expected '1.2.0-abc1234' prefix, got %q", got)
	}
}

func TestInfoFormatting(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := info(tc.info); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
