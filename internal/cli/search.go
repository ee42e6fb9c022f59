package cli

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/spf13/cobra"
)

// searchItem is one selectable language/recipe pair.
type searchItem struct {
	cfg    *manifest.Config
	recipe string
}

func (s searchItem) label() string { return s.cfg.Language + "/" + s.recipe }

// finder selects an item index; replaced in tests.
var finder = func(items []searchItem) (int, error) {
	return fuzzyfinder.Find(
		items,
		func(i int) string {
			return items[i].label()
		},
		fuzzyfinder.WithPromptString("Select recipe: "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			return previewRecipe(items[i])
		}),
	)
}

func newSearchCmd(a *app) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "search [directory] [file]",
		Short: "Pick a language and recipe interactively, then build it",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.loadLanguages()
			if err != nil {
				return err
			}
			items := searchItems(set)
			if len(items) == 0 {
				return fmt.Errorf("no language configs found in %s", a.root)
			}

			idx, err := finder(items)
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("selecting recipe: %w", err)
			}
			picked := items[idx]

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			base := a.settings.BaseName()
			if len(args) > 1 {
				base = args[1]
			}
			return a.build(cmd, picked.cfg, dir, base, picked.recipe, opts)
		},
	}
	addBuildFlags(cmd.Flags(), opts, false)
	return cmd
}

func searchItems(set *manifest.Set) []searchItem {
	var items []searchItem
	for _, cfg := range set.All() {
		for _, name := range cfg.RecipeNames() {
			items = append(items, searchItem{cfg: cfg, recipe: name})
		}
	}
	return items
}

func previewRecipe(item searchItem) string {
	steps, _ := item.cfg.Recipe(item.recipe)
	out := item.label() + "\n"
	if item.cfg.Description != "" {
		out += item.cfg.Description + "\n"
	}
	out += "\n"
	for _, step := range steps {
		out += step + "\n"
	}
	return out
}
