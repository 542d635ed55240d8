package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterup/cmd/clusterup/handlers"
)

// Validate returns the command that checks a topology file.
func Validate() *cobra.Command {
	var topologyPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a topology has every required machine type",
		Long: `Check that the topology has at least one boot machine, one master
and one agent. Exits with status 2 and one line per missing type otherwise.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(topologyPath)
		},
	}

	cmd.Flags().StringVarP(&topologyPath, "topology", "t", handlers.DefaultTopologyFile, "Path to topology file")

	return cmd
}
