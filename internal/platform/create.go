package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrorKind classifies a filesystem error.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindExists
	KindPermission
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindExists:
		return "already exists"
	case KindPermission:
		return "permission denied"
	case KindNotFound:
		return "not found"
	default:
		return "other"
	}
}

// Classify maps err onto an ErrorKind using the fs sentinel errors.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrExist):
		return KindExists
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	default:
		return KindOther
	}
}

// Mkdir creates a single directory. It fails if path already exists.
func Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// MkdirLeaf creates any missing parents of path, then path itself. Unlike
// os.MkdirAll it fails when the final directory already exists. A parent
// that exists as a regular file is reported as fs.ErrExist as well.
func MkdirLeaf(path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), perm); err != nil {
		if blocker := fileAncestor(path); blocker != "" {
			return &fs.PathError{Op: "mkdir", Path: blocker, Err: fs.ErrExist}
		}
		return err
	}
	return os.Mkdir(path, perm)
}

// fileAncestor returns the nearest ancestor of path that exists but is not a
// directory, or "" when there is none.
func fileAncestor(path string) string {
	p := path
	for {
		parent := filepath.Dir(p)
		if parent == p {
			return ""
		}
		p = parent
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return ""
		}
		return p
	}
}

// WriteExclusive creates path and writes chunks to it in order. It fails
// without touching the existing file if path already exists.
func WriteExclusive(path string, chunks []string, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, chunk := range chunks {
		if _, err := f.WriteString(chunk); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
