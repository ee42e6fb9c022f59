package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mkdev-labs/mkdev/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationNoSeed: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if versionShort {
				fmt.Fprintln(w, a.info.Version)
				return nil
			}

			if versionJSON {
				info := map[string]string{
					"version": a.info.Version,
					"commit":  a.info.Commit,
					"date":    a.info.Date,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(w, string(out))
				return nil
			}

			fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n",
				branding.CLIName(), a.info.Version, a.info.Commit, a.info.Date)
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	return cmd
}
