package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mkdev-labs/mkdev/internal/manifest"
)

// CheckRoot validates the configuration root and the template files its
// language configs refer to. When fix is true, it recreates missing
// directories and the settings file. It returns the number of problems
// that remain.
func CheckRoot(w io.Writer, root string, fix bool) (int, error) {
	fmt.Fprintln(w, "Config root check:")

	if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		if !fix {
			fmt.Fprintln(w, "         Run 'mkdev init' to create")
			return 1, nil
		}
		fmt.Fprintln(w, "  [FIX ] Running init...")
		if initErr := InitRoot(root, w); initErr != nil {
			return 1, fmt.Errorf("auto-fix init: %w", initErr)
		}
		return 0, nil
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", root)

	problems := 0
	if !checkDirExists(w, LangsPath(root), fix) {
		problems++
	}
	if !checkDirExists(w, filepath.Join(root, TemplatesDir), fix) {
		problems++
	}
	if !checkSettings(w, SettingsPath(root), fix) {
		problems++
	}

	files, err := manifest.ConfigFiles(LangsPath(root))
	if err != nil {
		return problems, nil // langs/ already reported
	}
	for _, file := range files {
		problems += checkTemplates(w, root, file)
	}
	return problems, nil
}

// checkTemplates reports templates whose stored file is missing. Configs
// that fail to parse count as one problem.
func checkTemplates(w io.Writer, root, file string) int {
	cfg, err := manifest.ParseFile(file)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	dir := TemplatesPath(root, cfg.Language)
	missing := 0
	for _, key := range cfg.TemplateKeys() {
		tmpl, _ := cfg.LookupTemplate(key)
		stored := filepath.Join(dir, tmpl.StoredFileName)
		info, err := os.Stat(stored)
		if err != nil || info.IsDir() {
			fmt.Fprintf(w, "  [MISS] %s: template %q has no file at %s\n", cfg.Language, key, stored)
			missing++
		}
	}
	if missing == 0 {
		fmt.Fprintf(w, "  [ OK ] %s: %d templates\n", cfg.Language, len(cfg.Templates))
	}
	return missing
}

func checkSettings(w io.Writer, path string, fix bool) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if err := ensureFile(io.Discard, path, defaultSettingsContent, FilePermNormal); err != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, err)
				return false
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
			return true
		}
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}

func checkDirExists(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return false
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
			return true
		}
		return false
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
