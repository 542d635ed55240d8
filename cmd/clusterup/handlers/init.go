package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/config/wizard"
)

// InitOptions holds the inputs of the init command.
type InitOptions struct {
	OutputPath string
	Advanced   bool
	FullOutput bool
}

// errInitAborted is returned when the user declines to overwrite.
var errInitAborted = errors.New("init aborted: existing file kept")

// Factory function variables for init - can be replaced in tests.
var (
	fileExists       = wizard.FileExists
	confirmOverwrite = wizard.ConfirmOverwrite
	runWizard        = wizard.RunWizard
	writeConfig      = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, opts InitOptions) error {
	if fileExists(opts.OutputPath) {
		ok, err := confirmOverwrite(opts.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			return errInitAborted
		}
	}

	printWelcome()

	result, err := runWizard(ctx, opts.Advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, opts.OutputPath, opts.FullOutput); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(opts.OutputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, titleStyle.Render("clusterup - DC/OS on your own machines"))
	fmt.Fprintln(stdout, dimStyle.Render("This wizard creates the installer settings file."))
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, successStyle.Render("Configuration saved!"))
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File:       %s\n", outputPath)
	fmt.Fprintf(stdout, "  Cluster:    %s\n", cfg.ClusterName)
	fmt.Fprintf(stdout, "  Method:     %s\n", cfg.InstallMethod)
	fmt.Fprintf(stdout, "  Provider:   %s\n", cfg.Provider)
	fmt.Fprintf(stdout, "  Threads:    %d\n", cfg.MaxInstallThreads)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintf(stdout, "  clusterup validate -t %s\n", DefaultTopologyFile)
	fmt.Fprintf(stdout, "  clusterup install -c %s\n", outputPath)
}
