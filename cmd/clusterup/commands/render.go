package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterup/cmd/clusterup/handlers"
)

// Render returns the command that prints the generated installer inputs.
//
// Nothing is uploaded and no machine is contacted.
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the generated cluster config and ip-detect script",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Render(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.TopologyPath, "topology", "t", handlers.DefaultTopologyFile, "Path to topology file")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: clusterup.yaml)")
	cmd.Flags().StringVar(&opts.Method, "method", "", "Override the install method (ssh_push, ssh_pull, web)")

	return cmd
}
