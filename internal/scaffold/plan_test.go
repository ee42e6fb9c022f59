package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkdev-labs/mkdev/internal/recipe"
)

func TestPlan_DoesNotTouchFilesystem(t *testing.T) {
	cfg := rustConfig(t, nil)
	buildDir := filepath.Join(t.TempDir(), "out")

	plan, err := Plan([]string{"dir src", "tmp src|main", "tmp nope"}, cfg,
		recipe.BuildContext{BuildDir: buildDir, BaseFileName: "app"})
	if err != nil {
		t.Fatal(err)
	}
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want 3", len(plan))
	}
	if plan[1].Target.Path != filepath.Join(buildDir, "src", "app.rs") {
		t.Errorf("plan[1] path = %q", plan[1].Target.Path)
	}
	if !errors.Is(plan[2].Err, recipe.ErrUnknownTemplate) {
		t.Errorf("plan[2].Err = %v, want ErrUnknownTemplate", plan[2].Err)
	}
	if _, err := os.Stat(buildDir); !os.IsNotExist(err) {
		t.Errorf("Plan created the build dir: %v", err)
	}

	var out bytes.Buffer
	WritePlan(&out, buildDir, plan)
	for _, want := range []string{"Would ensure build directory", "Would create directory", "from template"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("plan output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPlan_ParseFailure(t *testing.T) {
	_, err := Plan([]string{"dir"}, nil, recipe.BuildContext{BuildDir: t.TempDir()})
	if !errors.Is(err, recipe.ErrMalformedStep) {
		t.Errorf("error = %v, want ErrMalformedStep", err)
	}
}

func TestResolveTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "one\ntwo")

	got, err := ResolveTemplate(&recipe.TemplateSource{StoredPath: filepath.Join(dir, "a.txt"), FileName: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got.Lines, "") != "one\ntwo" || len(got.Lines) != 2 {
		t.Errorf("Lines = %q", got.Lines)
	}

	_, err = ResolveTemplate(&recipe.TemplateSource{StoredPath: dir})
	if !errors.Is(err, recipe.ErrStorageUnavailable) {
		t.Errorf("directory as template: error = %v, want ErrStorageUnavailable", err)
	}
}
