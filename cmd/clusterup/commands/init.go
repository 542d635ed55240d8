package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterup/cmd/clusterup/handlers"
	"github.com/imamik/clusterup/internal/config"
)

// Init returns the command for interactively creating installer settings.
//
// Flags:
//
//	--output, -o: Path to output file (default "clusterup.yaml")
//	--advanced, -a: Show advanced configuration options
//	--full, -f: Output full YAML with all options (default: minimal output)
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create installer settings",
		Long: `Interactively create the installer settings file.

This command asks about:

  - Cluster identity (name, install method and provider)
  - SSH access (login user and keys)
  - Install threads and the postflight budget

Use --advanced for the installer layout, ports and DNS resolvers.

Use --full to output every setting (useful for manual editing). By
default only values that differ from the defaults are written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", config.DefaultConfigFile, "Output file path")
	cmd.Flags().BoolVarP(&opts.Advanced, "advanced", "a", false, "Show advanced options")
	cmd.Flags().BoolVarP(&opts.FullOutput, "full", "f", false, "Output full YAML with all options")

	return cmd
}
