package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/config"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// annotationNoSeed marks commands that must not create the config root.
const annotationNoSeed = "mkdev/no-seed"

// reservedNames cannot be used as language names because they are
// subcommands of the root.
var reservedNames = []string{
	"list", "validate", "config", "init", "doctor", "search", "imprint", "delete",
	"version", "help", "completion",
}

var errUnknownLanguage = errors.New("unknown language")

// app holds the state shared by the commands of one invocation.
type app struct {
	info BuildInfo

	// Persistent flags.
	configDir string
	verbose   bool
	logFormat string

	root     string
	settings *config.Settings
	log      *slog.Logger
}

// setup resolves the config root, loads settings and builds the logger.
// The root is seeded with the bundled defaults unless cmd opts out.
func (a *app) setup(cmd *cobra.Command) error {
	root, err := userdata.ResolveConfigRoot(a.configDir)
	if err != nil {
		return err
	}
	a.root = root

	settings, err := config.Load(root)
	if err != nil {
		return err
	}
	a.settings = settings

	format := a.logFormat
	if format == "" {
		format = settings.LogFormat()
	}
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = newLogger(level, format, cmd.ErrOrStderr())
	a.log.Debug("config root resolved", "root", root)

	if skipSeed(cmd) {
		return nil
	}
	if _, err := userdata.EnsureConfigRoot(root, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("preparing config root: %w", err)
	}
	return nil
}

func skipSeed(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoSeed] == "true" {
			return true
		}
	}
	return false
}

// loadLanguages loads every language config, logging the ones skipped.
func (a *app) loadLanguages() (*manifest.Set, error) {
	set, issues, err := manifest.LoadDir(a.root, manifest.LoadOptions{
		Version:  a.info.Version,
		Reserved: reservedNames,
	})
	if err != nil {
		return nil, fmt.Errorf("loading language configs: %w", err)
	}
	for _, issue := range issues {
		a.log.Warn("skipping language config", "path", issue.Path, "reason", issue.Message)
	}
	return set, nil
}

// language returns the loaded config for name.
func (a *app) language(name string) (*manifest.Config, error) {
	set, err := a.loadLanguages()
	if err != nil {
		return nil, err
	}
	cfg, ok := set.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", errUnknownLanguage, name, strings.Join(set.Languages(), ", "))
	}
	return cfg, nil
}
