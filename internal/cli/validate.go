package cli

import (
	"fmt"
	"io"

	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/recipe"
	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check language configs against the schema",
		Long: `Validate language config files against the embedded JSON schema.

Without arguments every file in <config-dir>/langs is checked. Steps that do
not parse and tmp steps naming a template the config does not define are
reported as warnings; they only fail when the recipe is built.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				var err error
				files, err = manifest.ConfigFiles(userdata.LangsPath(a.root))
				if err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			invalid := 0
			for _, file := range files {
				if !validateOne(w, file) {
					invalid++
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d configs invalid", invalid, len(files))
			}
			fmt.Fprintf(w, "%d configs valid.\n", len(files))
			return nil
		},
	}
}

func validateOne(w io.Writer, file string) bool {
	res, err := manifest.ValidateFile(file)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", file, err)
		return false
	}
	if !res.Valid {
		fmt.Fprintf(w, "  [FAIL] %s\n", file)
		for _, issue := range res.Issues {
			fmt.Fprintf(w, "         %s\n", issue)
		}
		return false
	}

	cfg, err := manifest.ParseFile(file)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", file, err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s (%s)\n", file, cfg.Language)
	for _, warning := range lintRecipes(cfg) {
		fmt.Fprintf(w, "  [WARN] %s\n", warning)
	}
	return true
}

// lintRecipes reports steps that would fail at build time.
func lintRecipes(cfg *manifest.Config) []string {
	var warnings []string
	for _, name := range cfg.RecipeNames() {
		steps, _ := cfg.Recipe(name)
		for i, raw := range steps {
			step, err := recipe.Parse(raw)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: recipe %s: %v", cfg.Language, name,
					&recipe.StepError{Index: i, Raw: raw, Err: err}))
				continue
			}
			if step.Command != recipe.Template {
				continue
			}
			if _, ok := cfg.LookupTemplate(step.TemplateKey()); !ok {
				warnings = append(warnings, fmt.Sprintf("%s: recipe %s: step %d (%q): template %q is not defined",
					cfg.Language, name, i+1, raw, step.TemplateKey()))
			}
		}
	}
	return warnings
}
