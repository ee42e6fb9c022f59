package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/scaffold"
	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

var errDefaultRecipe = errors.New("the default recipe cannot be deleted")

func newDeleteCmd(a *app) *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:   "delete <language> [recipe]",
		Short: "Remove a recipe or a whole language",
		Long: `Delete a recipe from a language config, or the language config itself.

With a recipe name only that recipe is removed; the default recipe cannot be
deleted. Without one the language file in <config-dir>/langs is removed, and
--purge also removes its templates directory. Template files shared with other
recipes are never touched when a single recipe is deleted.`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return a.completeLanguages(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.language(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				if err := os.Remove(cfg.Source); err != nil {
					return fmt.Errorf("deleting %s: %w", cfg.Source, err)
				}
				fmt.Fprintf(w, "Deleted language %s at %s\n", cfg.Language, cfg.Source)
				if purge {
					dir := userdata.TemplatesPath(a.root, cfg.Language)
					if err := os.RemoveAll(dir); err != nil {
						return fmt.Errorf("deleting templates %s: %w", dir, err)
					}
					fmt.Fprintf(w, "Deleted templates at %s\n", dir)
				}
				return nil
			}

			name := args[1]
			if name == manifest.DefaultRecipe {
				return errDefaultRecipe
			}
			doc, err := manifest.OpenDocument(cfg.Source)
			if err != nil {
				return err
			}
			if !doc.RemoveRecipe(name) {
				return fmt.Errorf("%w %q for %s (available: %s)", scaffold.ErrUnknownRecipe, name, cfg.Language, strings.Join(cfg.RecipeNames(), ", "))
			}
			if _, err := doc.Save(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted recipe %s from %s\n", name, cfg.Source)
			return nil
		},
	}
	cmd.Flags().BoolVar(&purge, "purge", false, "Also remove the language's templates directory")
	return cmd
}
