package cli

import (
	"fmt"

	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

func newDoctorCmd(a *app) *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Health check for the configuration root",
		Long:        `Check that the configuration root is complete and that every template a language config names has a stored file.`,
		Annotations: map[string]string{annotationNoSeed: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := userdata.CheckRoot(cmd.OutOrStdout(), a.root, fix)
			if err != nil {
				return err
			}
			if problems > 0 {
				return fmt.Errorf("%d problems found", problems)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Recreate missing directories and settings")
	return cmd
}
