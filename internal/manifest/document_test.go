package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocument_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs", "zig.yaml")
	doc := NewDocument(path, "zig", ".zig", "Zig executable")
	doc.SetTemplate("main", Template{StoredFileName: "main.zig", Rename: true})
	doc.SetTemplate("build.zig", Template{StoredFileName: "app/build.zig"})
	doc.SetRecipe(DefaultRecipe, []string{"dir src", "tmp src|main", "tmp build.zig"})

	cfg, err := doc.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reread, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if diff := cmp.Diff(cfg, reread); diff != "" {
		t.Errorf("saved config mismatch (-save +reread):\n%s", diff)
	}
	want := map[string]Template{
		"main":      {StoredFileName: "main.zig", Rename: true},
		"build.zig": {StoredFileName: "app/build.zig"},
	}
	if diff := cmp.Diff(want, reread.Templates); diff != "" {
		t.Errorf("Templates mismatch (-want +got):\n%s", diff)
	}
	if reread.Extension != ".zig" || reread.Description != "Zig executable" {
		t.Errorf("header = %q %q", reread.Extension, reread.Description)
	}
}

func TestDocument_KeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python.yaml")
	data, err := os.ReadFile(testPath("valid-python.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	data = append([]byte("# team python layout\n"), data...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	doc.SetRecipe("script", []string{"tmp main"})
	if !doc.RemoveRecipe("package") {
		t.Error("RemoveRecipe(package) = false")
	}
	if doc.RemoveRecipe("package") {
		t.Error("second RemoveRecipe(package) = true")
	}
	cfg, err := doc.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if diff := cmp.Diff([]string{"default", "script"}, cfg.RecipeNames()); diff != "" {
		t.Errorf("RecipeNames mismatch (-want +got):\n%s", diff)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(saved), "# team python layout\n") {
		t.Errorf("comment lost:\n%s", saved)
	}
	if !strings.Contains(string(saved), "main: main.py[r]") {
		t.Errorf("untouched template rewritten:\n%s", saved)
	}
}

func TestDocument_SaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python.yaml")
	original, err := os.ReadFile(testPath("valid-python.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.HasRecipe(DefaultRecipe) {
		t.Fatal("HasRecipe(default) = false")
	}
	doc.RemoveRecipe(DefaultRecipe)
	if _, err := doc.Save(); err == nil {
		t.Fatal("Save() accepted a config without a default recipe")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(original) {
		t.Error("rejected save modified the file")
	}
}

func TestOpenDocument_NotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	if err := os.WriteFile(path, []byte("- a\n- b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenDocument(path); err == nil {
		t.Error("OpenDocument accepted a sequence")
	}
}
