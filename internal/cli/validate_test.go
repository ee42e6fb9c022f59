package cli

import (
	"strings"
	"testing"

	"github.com/mkdev-labs/mkdev/internal/manifest"
)

func TestLintRecipes(t *testing.T) {
	cfg := &manifest.Config{
		Language:  "demo",
		Templates: map[string]manifest.Template{"main": {StoredFileName: "main.txt"}},
		Recipes: map[string][]string{
			"default": {"tmp main", "tmp readme", "mkdir x", "dir a||b"},
		},
	}

	got := lintRecipes(cfg)
	if len(got) != 3 {
		t.Fatalf("lintRecipes() = %v, want 3 warnings", got)
	}
	if !strings.Contains(got[0], `template "readme" is not defined`) {
		t.Errorf("warning 0 = %q", got[0])
	}
	if !strings.Contains(got[1], "unknown command") {
		t.Errorf("warning 1 = %q", got[1])
	}
	if !strings.Contains(got[2], "step 4") {
		t.Errorf("warning 2 = %q", got[2])
	}
}
