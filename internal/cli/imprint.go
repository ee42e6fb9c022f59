package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/imprint"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	errRecipeExists     = errors.New("recipe already exists")
	errTemplateConflict = errors.New("template key already used")
	errExtRequired      = errors.New("--ext is required for a new language")
)

type imprintOptions struct {
	ext         string
	description string
	exclude     []string
	force       bool
}

func newImprintCmd(a *app) *cobra.Command {
	opts := &imprintOptions{}
	cmd := &cobra.Command{
		Use:   "imprint <language> <recipe> [directory]",
		Short: "Save an existing directory tree as a recipe",
		Long: `Capture a directory (default: the current one) as a recipe of a language.

Directories become dir steps, empty files ph steps and every other file a
template stored under <config-dir>/templates/<language>/<recipe>/ and used by
a tmp step. The .git directory and symlinks are skipped.

A language that does not exist yet is created; --ext is then required and the
imprinted recipe also becomes its default recipe. Replacing an existing recipe
requires --force.

Examples:
  mkdev imprint go service
  mkdev imprint web site ./site --ext .html -x node_modules -x "*.log"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 3 {
				dir = args[2]
			}
			return a.imprint(cmd.OutOrStdout(), args[0], args[1], dir, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ext, "ext", "", "File extension of a new language, e.g. .zig")
	f.StringVarP(&opts.description, "description", "d", "", "Language description")
	f.StringArrayVarP(&opts.exclude, "exclude", "x", nil, "Glob of paths to leave out (repeatable)")
	f.BoolVarP(&opts.force, "force", "f", false, "Replace an existing recipe of the same name")
	return cmd
}

func (a *app) imprint(w io.Writer, language, name, dir string, opts *imprintOptions) error {
	if slices.Contains(reservedNames, language) {
		return fmt.Errorf("language name %q is reserved", language)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid recipe name %q", name)
	}

	snap, err := imprint.Take(dir, imprint.Options{Exclude: opts.exclude})
	if err != nil {
		return fmt.Errorf("imprinting %s: %w", dir, err)
	}

	set, err := a.loadLanguages()
	if err != nil {
		return err
	}
	cfg, exists := set.Get(language)

	var doc *manifest.Document
	if exists {
		doc, err = manifest.OpenDocument(cfg.Source)
		if err != nil {
			return err
		}
		if doc.HasRecipe(name) && !opts.force {
			return fmt.Errorf("%w: %s in %s (use --force to replace it)", errRecipeExists, name, cfg.Source)
		}
		if opts.description != "" {
			doc.SetDescription(opts.description)
		}
	} else {
		if opts.ext == "" {
			return fmt.Errorf("%w (%q is not a known language)", errExtRequired, language)
		}
		file := filepath.Join(userdata.LangsPath(a.root), language+".yaml")
		if _, err := os.Stat(file); err == nil {
			return fmt.Errorf("%s exists but did not load; fix it or remove it first", file)
		}
		doc = manifest.NewDocument(file, language, opts.ext, opts.description)
		cfg = &manifest.Config{Templates: map[string]manifest.Template{}}
	}

	templateRoot := userdata.TemplatesPath(a.root, language)
	stored := 0
	for _, f := range snap.Files {
		tpl := manifest.Template{StoredFileName: path.Join(name, f.Rel)}
		if existing, ok := cfg.LookupTemplate(f.Key); ok && existing != tpl {
			same, err := sameContent(filepath.Join(templateRoot, filepath.FromSlash(existing.StoredFileName)), f.Data)
			if err != nil {
				return err
			}
			if !same || existing.Rename {
				return fmt.Errorf("%w: %s maps to %s; exclude %s or rename it", errTemplateConflict, f.Key, existing.StoredFileName, f.Rel)
			}
			continue
		}

		dest := filepath.Join(templateRoot, filepath.FromSlash(tpl.StoredFileName))
		if err := os.MkdirAll(filepath.Dir(dest), userdata.DirPermNormal); err != nil {
			return fmt.Errorf("creating template directory: %w", err)
		}
		if err := os.WriteFile(dest, f.Data, userdata.FilePermNormal); err != nil {
			return fmt.Errorf("writing template %s: %w", dest, err)
		}
		doc.SetTemplate(f.Key, tpl)
		stored++
	}

	doc.SetRecipe(name, snap.Steps)
	if !exists && name != manifest.DefaultRecipe {
		doc.SetRecipe(manifest.DefaultRecipe, snap.Steps)
	}
	if _, err := doc.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", doc.Path, err)
	}
	a.log.Debug("recipe imprinted", "language", language, "recipe", name, "steps", len(snap.Steps), "templates", stored)

	for _, s := range snap.Skipped {
		fmt.Fprintf(w, "  [SKIP] %s: %s\n", s.Rel, s.Reason)
	}
	fmt.Fprintf(w, "Imprinted %s/%s: %d steps, %d templates\n", language, name, len(snap.Steps), stored)
	fmt.Fprintln(w, doc.Path)
	return nil
}

// sameContent reports whether the file at path holds data.
func sameContent(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading template %s: %w", path, err)
	}
	return bytes.Equal(current, data), nil
}
