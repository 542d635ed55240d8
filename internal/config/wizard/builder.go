package wizard

import "github.com/imamik/clusterup/internal/config"

// BuildConfig creates a Config from the wizard result. Unanswered fields
// keep their defaults.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		ClusterName:       result.ClusterName,
		InstallMethod:     result.InstallMethod,
		Provider:          result.Provider,
		MaxInstallThreads: result.MaxInstallThreads,
		PostflightTimeout: result.PostflightTimeout,
		SSH: config.SSHConfig{
			User:           result.SSHUser,
			KeyPath:        result.SSHKeyPath,
			ClusterKeyPath: result.ClusterKeyPath,
		},
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(cfg, result.AdvancedOptions)
	}

	cfg.ApplyDefaults()
	return cfg
}

func applyAdvancedOptions(cfg *config.Config, opts *AdvancedOptions) {
	cfg.Installer.WorkDir = opts.WorkDir
	cfg.Installer.SharedMount = opts.SharedMount
	cfg.Installer.WebPort = opts.WebPort
	cfg.Installer.BootstrapPort = opts.BootstrapPort
	if len(opts.Resolvers) > 0 {
		cfg.Resolvers = opts.Resolvers
	}
}
