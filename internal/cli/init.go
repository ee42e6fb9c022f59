package cli

import (
	"fmt"

	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var restore bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration root with the bundled languages",
		Long: `Initialize the mkdev configuration root.

Creates langs/, templates/ and config.yaml, copying the bundled language
configs and templates. Existing files are skipped. With --restore the bundled
files are rewritten with their default content; files you added are kept.`,
		Annotations: map[string]string{annotationNoSeed: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Initializing %s\n", a.root)
			if err := userdata.InitRoot(a.root, w); err != nil {
				return fmt.Errorf("initializing config root: %w", err)
			}
			if restore {
				if err := userdata.RestoreDefaults(a.root, w); err != nil {
					return fmt.Errorf("restoring defaults: %w", err)
				}
			}
			fmt.Fprintln(w, "\nConfig root initialized successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&restore, "restore", false, "Rewrite the bundled configs and templates")
	return cmd
}
