package handlers

import (
	"fmt"

	"github.com/imamik/clusterup/internal/clusterconfig"
	"github.com/imamik/clusterup/internal/config"
)

// RenderOptions holds the inputs of the render command.
type RenderOptions struct {
	TopologyPath string
	ConfigPath   string
	// Method overrides the configured install method.
	Method string
}

// Render prints the cluster config and ip-detect script that an install
// would upload to the boot machine.
func Render(opts RenderOptions) error {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Method != "" {
		cfg.InstallMethod = config.InstallMethod(opts.Method)
		if !cfg.InstallMethod.Valid() {
			return fmt.Errorf("invalid install method %q", opts.Method)
		}
	}

	_, topo, err := loadTopology(opts.TopologyPath)
	if err != nil {
		return err
	}

	cluster, err := clusterconfig.NewBuilder(cfg).Build(topo, cfg.InstallMethod, cfg.Provider)
	if err != nil {
		return err
	}
	rendered, err := cluster.Render()
	if err != nil {
		return err
	}
	ipDetect, err := clusterconfig.IPDetectScript(cluster)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, dimStyle.Render("# "+clusterconfig.GenconfPath(cfg.Installer.WorkDir, clusterconfig.ConfigFile)))
	fmt.Fprint(stdout, string(rendered))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, dimStyle.Render("# "+clusterconfig.GenconfPath(cfg.Installer.WorkDir, clusterconfig.IPDetectFile)))
	fmt.Fprint(stdout, string(ipDetect))
	return nil
}
