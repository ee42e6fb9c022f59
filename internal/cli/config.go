package cli

import (
	"fmt"

	"github.com/mkdev-labs/mkdev/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage user settings",
		Long:        `Read and write mkdev settings stored in config.yaml at the configuration root.`,
		Annotations: map[string]string{annotationNoSeed: "true"},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := a.settings.Set(key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				value, err := a.settings.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(w, value)
				return nil
			}
			for _, key := range config.Keys {
				value, _ := a.settings.Get(key)
				fmt.Fprintf(w, "%s = %s\n", key, value)
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration root and settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.root)
			fmt.Fprintln(cmd.OutOrStdout(), config.FilePath(a.root))
			return nil
		},
	})

	return configCmd
}
