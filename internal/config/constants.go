package config

import "time"

// Defaults applied by ApplyDefaults.
const (
	DefaultClusterName       = "clusterup"
	DefaultInstallMethod     = MethodSSHPull
	DefaultProvider          = ProviderVirtualBox
	DefaultMaxInstallThreads = 4
	DefaultSSHUser           = "vagrant"
	DefaultSSHPort           = 22
	DefaultWorkDir           = "/opt/dcos"
	DefaultScript            = "dcos_generate_config.sh"
	DefaultSharedMount       = "/vagrant"
	DefaultWebPort           = 9000
	DefaultBootstrapPort     = 80
	DefaultPostflightTimeout = 900 * time.Second

	// DefaultConfigFile is looked up in the working directory when no
	// config path is given.
	DefaultConfigFile = "clusterup.yaml"
)

// Environment variables for archive credentials.
const (
	EnvArchiveAccessKey = "CLUSTERUP_ARCHIVE_ACCESS_KEY"
	EnvArchiveSecretKey = "CLUSTERUP_ARCHIVE_SECRET_KEY"
)
