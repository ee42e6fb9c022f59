package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mkdev-labs/mkdev/internal/branding"
	"github.com/mkdev-labs/mkdev/internal/launch"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/recipe"
	"github.com/mkdev-labs/mkdev/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// buildOptions are the flags shared by every command that runs a build.
type buildOptions struct {
	recipe string
	code   bool
	editor string
	dryRun bool
}

func addBuildFlags(fs *pflag.FlagSet, o *buildOptions, withRecipe bool) {
	if withRecipe {
		fs.StringVarP(&o.recipe, "recipe", "r", "", "Recipe to build (default from settings)")
	}
	fs.BoolVarP(&o.code, "code", "c", false, "Open the build directory in an editor afterwards")
	fs.StringVarP(&o.editor, "editor", "e", "", "Editor command used with --code (default from settings)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print what would be created without touching the filesystem")
}

// runBuild handles `mkdev <language> [directory] [file]`.
func (a *app) runBuild(cmd *cobra.Command, args []string, o *buildOptions) error {
	cfg, err := a.language(args[0])
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}
	base := a.settings.BaseName()
	if len(args) > 2 {
		base = args[2]
	}
	recipeName := o.recipe
	if recipeName == "" {
		recipeName = a.settings.Recipe()
	}
	return a.build(cmd, cfg, dir, base, recipeName, o)
}

func (a *app) build(cmd *cobra.Command, cfg *manifest.Config, dir, base, recipeName string, o *buildOptions) error {
	buildDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving build directory %s: %w", dir, err)
	}
	bc := recipe.BuildContext{BuildDir: buildDir, BaseFileName: base, RecipeName: recipeName}
	a.log.Debug("build requested",
		"language", cfg.Language, "config", cfg.Source, "recipe", recipeName,
		"dir", buildDir, "base", base, "templates", cfg.TemplateRoot)

	out := cmd.OutOrStdout()
	if o.dryRun {
		steps, err := scaffold.RecipeSteps(cfg, recipeName)
		if err != nil {
			return err
		}
		plan, err := scaffold.Plan(steps, cfg, bc)
		if err != nil {
			return err
		}
		scaffold.WritePlan(out, buildDir, plan)
		return nil
	}

	fmt.Fprintf(out, "Building %s (%s) in %s\n", cfg.Language, recipeName, buildDir)
	engine := scaffold.New(scaffold.WithOutput(out), scaffold.WithLogger(a.log))
	res, err := engine.Build(cfg, bc)
	if err != nil {
		return err
	}
	printResult(out, res)
	if !res.Complete() {
		return scaffold.ErrIncomplete
	}

	if o.code {
		a.openEditor(cmd, o.editor, buildDir)
	}
	return nil
}

func printResult(w io.Writer, res *scaffold.Result) {
	created := len(res.Created())
	if !res.Complete() {
		fmt.Fprintf(w, "\nBuild incomplete: stopped at step %d, %d created.\n", len(res.Steps), created)
		return
	}
	fmt.Fprintf(w, "\nDone: %d created, %d not created.\n", created, len(res.Steps)-created)
}

// openEditor launches the editor on dir. Failures only produce a warning.
func (a *app) openEditor(cmd *cobra.Command, editor, dir string) {
	if editor == "" {
		editor = a.settings.Editor()
	}
	a.log.Debug("opening editor", "editor", editor, "dir", dir)
	if err := launch.Dispatch(editor).Open(cmd.Context(), dir); err != nil {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Warning: could not open editor: %v\n", err)
		fmt.Fprintf(errOut, "Pass --editor or run '%s config set editor <command>'.\n", branding.CLIName())
	}
}
