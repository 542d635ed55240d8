package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterup/cmd/clusterup/handlers"
)

// Install returns the command that installs the cluster.
//
// Optional flags:
//
//	--topology, -t: Path to the machine topology file (default: machines.yaml)
//	--config, -c: Path to installer settings (default: auto-detect clusterup.yaml)
//	--metrics-file: Write run metrics in Prometheus text format
//	--no-tui: Print log lines instead of the live dashboard
//
// Environment variables:
//
//	CLUSTERUP_TIMEOUT_WEB_INSTALLER, CLUSTERUP_POLL_INTERVAL,
//	CLUSTERUP_TIMEOUT_POSTFLIGHT, CLUSTERUP_SSH_MAX_RETRIES,
//	CLUSTERUP_SSH_RETRY_DELAY: readiness and connection budgets
func Install() *cobra.Command {
	var opts handlers.InstallOptions

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the cluster onto the machines of a topology",
		Long: `Install the cluster onto the machines listed in the topology file.

The install method is taken from the settings file:
  ssh_pull  the boot machine serves the artifacts and every node installs itself
  ssh_push  the installer on the boot machine pushes to every node
  web       the web installer is started on the boot machine

Examples:
  # Install using machines.yaml and clusterup.yaml in the current directory
  clusterup install

  # Use a different topology and keep run metrics
  clusterup install -t lab.yaml --metrics-file clusterup.prom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.TopologyPath, "topology", "t", handlers.DefaultTopologyFile, "Path to topology file")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: clusterup.yaml)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable the live dashboard on interactive terminals")

	return cmd
}
