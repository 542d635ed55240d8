// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the clusterup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusterup",
		Short: "Install a DC/OS cluster onto provisioned machines",
		// Errors are printed by main with their exit code mapping.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Install())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Render())
	cmd.AddCommand(Version())

	return cmd
}
