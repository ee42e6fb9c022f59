package imprint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTake(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":              "# demo\n",
		"src/main.go":            "package main\n",
		"src/empty.txt":          "",
		"bad name.txt":           "x",
		"node_modules/left.js":   "pad",
		".git/HEAD":              "ref: refs/heads/main\n",
		"src/vendor/keep/lib.go": "package keep\n",
	})
	if err := os.Mkdir(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}

	snap, err := Take(root, Options{Exclude: []string{"node_modules", "src/vendor/"}})
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}

	wantSteps := []string{
		"dir docs",
		"dir src",
		"tmp README.md",
		"ph src|empty.txt",
		"tmp src|main.go",
	}
	if diff := cmp.Diff(wantSteps, snap.Steps); diff != "" {
		t.Errorf("Steps mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []File{
		{Rel: "README.md", Key: "README.md", Data: []byte("# demo\n")},
		{Rel: "src/main.go", Key: "main.go", Data: []byte("package main\n")},
	}
	if diff := cmp.Diff(wantFiles, snap.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	wantSkipped := []Skipped{{Rel: "bad name.txt", Reason: "name contains whitespace"}}
	if diff := cmp.Diff(wantSkipped, snap.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestTake_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"target.txt": "x"})
	if err := os.Symlink(filepath.Join(root, "target.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	snap, err := Take(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"tmp target.txt"}, snap.Steps); diff != "" {
		t.Errorf("Steps mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Skipped) != 1 || snap.Skipped[0].Rel != "link.txt" {
		t.Errorf("Skipped = %+v, want link.txt", snap.Skipped)
	}
}

func TestTake_SharedName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/.gitignore": "bin/\n",
		"b/.gitignore": "bin/\n",
	})

	snap, err := Take(root, Options{})
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if len(snap.Files) != 1 {
		t.Errorf("identical files stored %d times, want once", len(snap.Files))
	}
	want := []string{"dir a", "dir b", "tmp a|.gitignore", "tmp b|.gitignore"}
	if diff := cmp.Diff(want, snap.Steps); diff != "" {
		t.Errorf("Steps mismatch (-want +got):\n%s", diff)
	}

	writeTree(t, root, map[string]string{"b/.gitignore": "target/\n"})
	if _, err := Take(root, Options{}); !errors.Is(err, ErrNameClash) {
		t.Errorf("Take() error = %v, want ErrNameClash", err)
	}
}

func TestTake_Errors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.txt": "x"})

	if _, err := Take(filepath.Join(root, "file.txt"), Options{}); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Take(file) error = %v, want ErrNotDirectory", err)
	}
	if _, err := Take(filepath.Join(root, "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Take(missing) error = %v, want not exist", err)
	}
	if _, err := Take(root, Options{Exclude: []string{"[unclosed"}}); err == nil {
		t.Error("Take() accepted a malformed exclude pattern")
	}
}
