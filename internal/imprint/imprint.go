package imprint

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar"
	"github.com/mkdev-labs/mkdev/internal/recipe"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrNameClash    = errors.New("files share a name but differ in content")
)

// Options tunes Take.
type Options struct {
	// Exclude holds glob patterns. A pattern containing '/' is matched
	// against the slash-separated path relative to the root, any other
	// pattern against the entry's base name. "**" crosses directories.
	Exclude []string
}

// File is a non-empty file that becomes a template.
type File struct {
	// Rel is the slash-separated path relative to the imprinted root.
	Rel string
	// Key is the template key, which is also the name the file is created
	// under when the recipe is built.
	Key  string
	Data []byte
}

// Skipped is an entry left out of the snapshot.
type Skipped struct {
	Rel    string
	Reason string
}

// Snapshot is a directory tree expressed as recipe steps.
type Snapshot struct {
	Steps   []string
	Files   []File
	Skipped []Skipped
}

// Take walks root and records every directory as a dir step, every empty
// file as a ph step and every other file as a tmp step keyed by its base
// name. Directory steps come first so tmp steps always find their parent.
//
// The .git directory, symlinks and entries whose names cannot be written as
// a step argument (whitespace or '|') are skipped. Two files with the same
// name but different content cannot share a template key and fail the
// snapshot with ErrNameClash.
func Take(root string, opts Options) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	snap := &Snapshot{}
	var dirs, files []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		skip, err := excluded(opts.Exclude, rel, d.Name())
		if err != nil {
			return err
		}
		if skip {
			return skipEntry(d)
		}
		if reason := unusableName(d.Name()); reason != "" {
			snap.Skipped = append(snap.Skipped, Skipped{Rel: rel, Reason: reason})
			return skipEntry(d)
		}

		switch {
		case d.IsDir():
			dirs = append(dirs, rel)
		case d.Type().IsRegular():
			files = append(files, rel)
		default:
			snap.Skipped = append(snap.Skipped, Skipped{Rel: rel, Reason: "not a regular file"})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	for _, rel := range dirs {
		snap.Steps = append(snap.Steps, "dir "+argument(rel))
	}

	byKey := make(map[string]File)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		if len(data) == 0 {
			snap.Steps = append(snap.Steps, "ph "+argument(rel))
			continue
		}

		key := filepath.Base(filepath.FromSlash(rel))
		if prev, ok := byKey[key]; ok {
			if !bytes.Equal(prev.Data, data) {
				return nil, fmt.Errorf("%w: %s and %s", ErrNameClash, prev.Rel, rel)
			}
		} else {
			f := File{Rel: rel, Key: key, Data: data}
			byKey[key] = f
			snap.Files = append(snap.Files, f)
		}
		snap.Steps = append(snap.Steps, "tmp "+argument(rel))
	}
	return snap, nil
}

// argument turns a relative path into a step argument.
func argument(rel string) string {
	return strings.ReplaceAll(rel, "/", recipe.Separator)
}

func excluded(patterns []string, rel, name string) (bool, error) {
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		target := name
		if strings.Contains(pattern, "/") {
			target = rel
		}
		ok, err := doublestar.Match(pattern, target)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func unusableName(name string) string {
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "name contains whitespace"
	}
	if strings.Contains(name, recipe.Separator) {
		return "name contains " + recipe.Separator
	}
	return ""
}

func skipEntry(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
