package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Directory names inside a config root.
const (
	LangsDir     = "langs"
	TemplatesDir = "templates"
)

// LoadOptions tunes LoadDir.
type LoadOptions struct {
	// Version is the running mkdev version, checked against each config's
	// "requires" constraint. Versions that are not semver skip the check.
	Version string

	// Reserved names cannot be used as a language, because they would
	// shadow built-in commands.
	Reserved []string
}

// LoadIssue describes a file that was skipped while loading.
type LoadIssue struct {
	Path    string
	Message string
}

func (i LoadIssue) String() string {
	return i.Path + ": " + i.Message
}

// Set is the collection of languages loaded from a config root.
type Set struct {
	byLang map[string]*Config
	order  []string
}

// NewSet builds a Set from already-decoded configs. Later duplicates of a
// language are ignored.
func NewSet(cfgs ...*Config) *Set {
	s := &Set{byLang: make(map[string]*Config)}
	for _, c := range cfgs {
		s.add(c)
	}
	return s
}

func (s *Set) add(c *Config) bool {
	if _, dup := s.byLang[c.Language]; dup {
		return false
	}
	s.byLang[c.Language] = c
	s.order = append(s.order, c.Language)
	sort.Strings(s.order)
	return true
}

// Get returns the config for a language.
func (s *Set) Get(language string) (*Config, bool) {
	c, ok := s.byLang[language]
	return c, ok
}

// Languages returns the loaded language names, sorted.
func (s *Set) Languages() []string {
	return append([]string(nil), s.order...)
}

// All returns the loaded configs in language order.
func (s *Set) All() []*Config {
	out := make([]*Config, 0, len(s.order))
	for _, lang := range s.order {
		out = append(out, s.byLang[lang])
	}
	return out
}

// Len returns the number of loaded languages.
func (s *Set) Len() int { return len(s.order) }

// ConfigFiles lists the YAML files in dir in lexical order.
func ConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading config directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir loads every language config in <root>/langs. Files that fail to
// parse or validate, duplicate an earlier language, use a reserved name or
// require a different mkdev version are skipped and reported as issues. Only
// a missing or unreadable langs directory is an error.
//
// Template references inside recipes are not checked here; they are
// resolved when a recipe is built.
func LoadDir(root string, opts LoadOptions) (*Set, []LoadIssue, error) {
	files, err := ConfigFiles(filepath.Join(root, LangsDir))
	if err != nil {
		return nil, nil, err
	}

	reserved := make(map[string]bool, len(opts.Reserved))
	for _, name := range opts.Reserved {
		reserved[name] = true
	}

	current := parseVersion(opts.Version)
	set := NewSet()
	var issues []LoadIssue

	for _, file := range files {
		cfg, err := ParseFile(file)
		if err != nil {
			issues = append(issues, LoadIssue{Path: file, Message: err.Error()})
			continue
		}
		if reserved[cfg.Language] {
			issues = append(issues, LoadIssue{Path: file, Message: fmt.Sprintf("language name %q is reserved", cfg.Language)})
			continue
		}
		if err := checkRequires(cfg.Requires, current); err != nil {
			issues = append(issues, LoadIssue{Path: file, Message: err.Error()})
			continue
		}

		cfg.TemplateRoot = filepath.Join(root, TemplatesDir, cfg.Language)
		if !set.add(cfg) {
			issues = append(issues, LoadIssue{Path: file, Message: fmt.Sprintf("language %q already defined", cfg.Language)})
		}
	}

	return set, issues, nil
}

// parseVersion strips a leading "v" and parses the version, returning nil
// for development builds.
func parseVersion(version string) *semver.Version {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil
	}
	return v
}

// checkRequires reports whether current satisfies constraint. An empty
// constraint or an unknown current version always passes.
func checkRequires(constraint string, current *semver.Version) error {
	if constraint == "" || current == nil {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", constraint, err)
	}
	if !c.Check(current) {
		return fmt.Errorf("requires mkdev %s, running %s", constraint, current)
	}
	return nil
}
