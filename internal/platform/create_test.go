package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindOther},
		{fs.ErrExist, KindExists},
		{&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, KindPermission},
		{fmt.Errorf("wrapped: %w", fs.ErrNotExist), KindNotFound},
		{errors.New("disk on fire"), KindOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestWriteExclusive(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.go")

	if err := WriteExclusive(path, []string{"package main\n", "\n", "func main() {}\n"}, 0644); err != nil {
		t.Fatalf("WriteExclusive failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package main\n\nfunc main() {}\n" {
		t.Errorf("content = %q", string(data))
	}

	err = WriteExclusive(path, []string{"overwritten"}, 0644)
	if Classify(err) != KindExists {
		t.Fatalf("second write error = %v, want exists", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "package main\n\nfunc main() {}\n" {
		t.Errorf("existing file was modified: %q", string(data))
	}
}

func TestWriteExclusive_MissingParent(t *testing.T) {
	err := WriteExclusive(filepath.Join(t.TempDir(), "nope", "file"), nil, 0644)
	if Classify(err) != KindNotFound {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestMkdirLeaf(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "c")

	if err := MkdirLeaf(path, 0755); err != nil {
		t.Fatalf("MkdirLeaf failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", path)
	}
	if err := MkdirLeaf(path, 0755); Classify(err) != KindExists {
		t.Errorf("second MkdirLeaf error = %v, want exists", err)
	}
	// Existing parents are fine.
	if err := MkdirLeaf(filepath.Join(tmp, "a", "b", "d"), 0755); err != nil {
		t.Errorf("MkdirLeaf with existing parents failed: %v", err)
	}
}

func TestMkdirLeaf_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "a")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{
		filepath.Join(file, "b"),
		filepath.Join(file, "b", "c"),
	} {
		err := MkdirLeaf(path, 0755)
		if Classify(err) != KindExists {
			t.Errorf("MkdirLeaf(%s) error = %v, want exists", path, err)
		}
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) || pathErr.Path != file {
			t.Errorf("MkdirLeaf(%s) blamed %v, want %s", path, err, file)
		}
	}
}

func TestMkdir(t *testing.T) {
	tmp := t.TempDir()
	if err := Mkdir(filepath.Join(tmp, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := Mkdir(filepath.Join(tmp, "src"), 0755); Classify(err) != KindExists {
		t.Errorf("error = %v, want exists", err)
	}
	if err := Mkdir(filepath.Join(tmp, "x", "y"), 0755); Classify(err) != KindNotFound {
		t.Errorf("error = %v, want not found", err)
	}
}
