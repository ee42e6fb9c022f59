package userdata

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/platform"
)

//go:embed all:defaults
var defaultsFS embed.FS

const defaultsDir = "defaults"

// Default content for config.yaml.
const defaultSettingsContent = `# mkdev settings. Environment variables (MKDEV_EDITOR, ...) take precedence.
editor: code
base_name: main
recipe: default
log_format: text
`

// Defaults returns the bundled configuration root as a read-only tree.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaultsFS, defaultsDir)
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// EnsureConfigRoot seeds root with the bundled defaults if it does not
// exist yet. It reports whether anything was created.
func EnsureConfigRoot(root string, w io.Writer) (bool, error) {
	_, err := os.Stat(root)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking config root %s: %w", root, err)
	}

	fmt.Fprintf(w, "Setting up %s for first use\n", root)
	if err := InitRoot(root, w); err != nil {
		return false, err
	}
	return true, nil
}

// InitRoot creates the configuration root with proper permissions.
// It prints progress messages to w. Existing items are skipped with a message.
func InitRoot(root string, w io.Writer) error {
	if err := ensureDir(w, root, DirPermNormal); err != nil {
		return err
	}

	err := fs.WalkDir(Defaults(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || p == "." {
			return err
		}
		dest := filepath.Join(root, filepath.FromSlash(p))
		if d.IsDir() {
			return ensureDir(w, dest, DirPermNormal)
		}
		content, err := fs.ReadFile(Defaults(), p)
		if err != nil {
			return err
		}
		return ensureFile(w, dest, string(content), FilePermNormal)
	})
	if err != nil {
		return err
	}

	return ensureFile(w, SettingsPath(root), defaultSettingsContent, FilePermNormal)
}

// RestoreDefaults rewrites every bundled language config and template under
// root with its default content. Files the user added are left alone, as is
// the settings file.
func RestoreDefaults(root string, w io.Writer) error {
	return fs.WalkDir(Defaults(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || p == "." {
			return err
		}
		dest := filepath.Join(root, filepath.FromSlash(p))
		if d.IsDir() {
			return ensureDir(io.Discard, dest, DirPermNormal)
		}
		content, err := fs.ReadFile(Defaults(), p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, content, FilePermNormal); err != nil {
			return fmt.Errorf("restoring %s: %w", dest, err)
		}
		fmt.Fprintf(w, "  [ OK ] Restored %s\n", dest)
		return nil
	})
}

// DefaultLanguages returns the names of the bundled language configs.
func DefaultLanguages() []string {
	entries, err := fs.ReadDir(Defaults(), LangsDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		}
	}
	return names
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
