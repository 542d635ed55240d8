// Package main is the entry point for the clusterup CLI.
//
// clusterup installs a DC/OS-style cluster onto machines that already
// exist: one boot machine, one or more masters, and private or public
// agents. It generates the cluster configuration, distributes it to the
// boot machine, and drives the install with the configured method.
//
// Commands: install, validate, render, version.
//
// For detailed usage information, run:
//
//	clusterup --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/clusterup/cmd/clusterup/commands"
	"github.com/imamik/clusterup/cmd/clusterup/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := handlers.LoadEnv(handlers.DefaultEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		handlers.ReportError(os.Stderr, err)
		os.Exit(handlers.ExitCode(err))
	}
}
