package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/scaffold"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

type listOptions struct {
	recipe string
	json   bool
	yaml   bool
	plain  bool
}

// languageEntry is one row of `mkdev list`.
type languageEntry struct {
	Language    string `json:"language" yaml:"language"`
	Ext         string `json:"ext" yaml:"ext"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Recipes     int    `json:"recipes" yaml:"recipes"`
	Templates   int    `json:"templates" yaml:"templates"`
	Source      string `json:"source" yaml:"source"`
}

func newListCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list [language]",
		Short: "List languages, or the templates and recipes of one language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.json && o.yaml {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}
			if len(args) == 0 {
				if o.recipe != "" {
					return fmt.Errorf("--recipe needs a language")
				}
				return a.listLanguages(cmd.OutOrStdout(), o)
			}
			cfg, err := a.language(args[0])
			if err != nil {
				return err
			}
			if o.recipe != "" {
				return listRecipe(cmd.OutOrStdout(), cfg, o)
			}
			return listLanguage(cmd.OutOrStdout(), cfg, o)
		},
	}
	cmd.Flags().StringVarP(&o.recipe, "recipe", "r", "", "Print the steps of one recipe")
	cmd.Flags().BoolVar(&o.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&o.yaml, "yaml", false, "Output in YAML format")
	cmd.Flags().BoolVar(&o.plain, "plain", false, "Disable styling")
	return cmd
}

func (a *app) listLanguages(w io.Writer, o *listOptions) error {
	set, err := a.loadLanguages()
	if err != nil {
		return err
	}

	entries := make([]languageEntry, 0, set.Len())
	for _, cfg := range set.All() {
		entries = append(entries, languageEntry{
			Language:    cfg.Language,
			Ext:         cfg.Extension,
			Description: cfg.Description,
			Recipes:     len(cfg.Recipes),
			Templates:   len(cfg.Templates),
			Source:      cfg.Source,
		})
	}

	switch {
	case o.json:
		return printJSON(w, entries)
	case o.yaml:
		return printYAML(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "No language configs found in %s.\n", a.root)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tEXT\tRECIPES\tTEMPLATES\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", e.Language, e.Ext, e.Recipes, e.Templates, desc)
	}
	return tw.Flush()
}

func listLanguage(w io.Writer, cfg *manifest.Config, o *listOptions) error {
	switch {
	case o.json:
		return printJSON(w, cfg)
	case o.yaml:
		return printYAML(w, cfg)
	}

	fmt.Fprintln(w, heading(o, fmt.Sprintf("%s (%s)", cfg.Language, cfg.Extension)))
	if cfg.Description != "" {
		fmt.Fprintln(w, cfg.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(o, "Templates"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEY\tFILE\tRENAME")
	for _, key := range cfg.TemplateKeys() {
		tmpl, _ := cfg.LookupTemplate(key)
		rename := "no"
		if tmpl.Rename {
			rename = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, tmpl.StoredFileName, rename)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range cfg.RecipeNames() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading(o, "Recipe "+name))
		steps, _ := cfg.Recipe(name)
		for _, step := range steps {
			fmt.Fprintf(w, "  %s\n", step)
		}
	}
	return nil
}

func listRecipe(w io.Writer, cfg *manifest.Config, o *listOptions) error {
	steps, err := scaffold.RecipeSteps(cfg, o.recipe)
	if err != nil {
		return err
	}
	switch {
	case o.json:
		return printJSON(w, steps)
	case o.yaml:
		return printYAML(w, steps)
	}
	for _, step := range steps {
		fmt.Fprintln(w, step)
	}
	return nil
}

func heading(o *listOptions, text string) string {
	if o.plain {
		return text
	}
	return headingStyle.Render(text)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
