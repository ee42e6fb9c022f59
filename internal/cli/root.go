package cli

import (
	"strings"

	"github.com/mkdev-labs/mkdev/internal/branding"
	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/userdata"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the full command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	a := &app{info: info}
	opts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName() + " <language> [directory] [file]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates a project skeleton from a language recipe.

Each language config in <config-dir>/langs defines templates and named
recipes. A recipe is a list of steps:
  dir a|b      create directory a/b under the build directory
  ph a|b.txt   create an empty file
  tmp a|key    write the template stored under key into directory a

Existing files are never overwritten.

Examples:
  mkdev python                    build the default python recipe in .
  mkdev rust ./demo -r lib        build the lib recipe into ./demo
  mkdev go ./svc server -c        name the main file server.go, then open an editor`,
		Args:              cobra.MaximumNArgs(3),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: a.completeLanguages,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runBuild(cmd, args, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "Configuration root (default $"+branding.EnvVar("CONFIG_DIR")+" or the user config dir)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug details to stderr")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (default from settings)")
	addBuildFlags(rootCmd.Flags(), opts, true)

	rootCmd.AddCommand(
		newListCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
		newInitCmd(a),
		newDoctorCmd(a),
		newSearchCmd(a),
		newImprintCmd(a),
		newDeleteCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	return NewRootCmd(BuildInfo{Version: version, Commit: commit, Date: date}).Execute()
}

// completeLanguages offers language names for the first argument and
// directories for the second.
func (a *app) completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		if len(args) == 1 {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	root, err := userdata.ResolveConfigRoot(a.configDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	set, _, err := manifest.LoadDir(root, manifest.LoadOptions{Version: a.info.Version, Reserved: reservedNames})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var suggestions []string
	for _, cfg := range set.All() {
		if strings.HasPrefix(cfg.Language, toComplete) {
			suggestions = append(suggestions, cfg.Language+"\t"+cfg.Description)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
