package config

import "time"

// InstallMethod selects how installation artifacts reach the target nodes.
type InstallMethod string

// Install methods.
const (
	MethodSSHPush InstallMethod = "ssh_push"
	MethodSSHPull InstallMethod = "ssh_pull"
	MethodWeb     InstallMethod = "web"
)

// Valid reports whether m is a known install method.
func (m InstallMethod) Valid() bool {
	switch m {
	case MethodSSHPush, MethodSSHPull, MethodWeb:
		return true
	}
	return false
}

// Provider is the kind of machine provider the topology was created with.
type Provider string

// Known providers.
const (
	ProviderVirtualBox Provider = "virtualbox"
	ProviderAWS        Provider = "aws"
)

// Cloud reports whether the provider runs machines on a cloud with a
// metadata-service DNS resolver.
func (p Provider) Cloud() bool {
	return p == ProviderAWS
}

// Config holds the installer configuration.
type Config struct {
	ClusterName       string        `yaml:"cluster_name"`
	InstallMethod     InstallMethod `yaml:"install_method"`
	Provider          Provider      `yaml:"provider"`
	MaxInstallThreads int           `yaml:"max_install_threads"`

	SSH       SSHConfig       `yaml:"ssh"`
	Installer InstallerConfig `yaml:"installer"`

	// Resolvers, when set, replace the provider default DNS resolvers.
	Resolvers []string `yaml:"resolvers,omitempty"`

	// PostflightTimeout is the remote health-check budget per machine.
	PostflightTimeout time.Duration `yaml:"postflight_timeout"`

	// RequiredTools are host executables that must be present before a run.
	RequiredTools []string `yaml:"required_tools,omitempty"`

	// Archive, if set, stores rendered artifacts in object storage.
	Archive *ArchiveConfig `yaml:"archive,omitempty"`
}

// SSHConfig configures the remote-command channel.
type SSHConfig struct {
	User string `yaml:"user"`
	// KeyPath is the private key used to log in to every machine.
	KeyPath string `yaml:"key_path,omitempty"`
	Port    int    `yaml:"port"`
	// ClusterKeyPath is the credential the boot machine uses to reach the
	// other nodes. Empty means a key pair is generated for the run and
	// authorized on every machine first.
	ClusterKeyPath string `yaml:"cluster_key_path,omitempty"`
}

// InstallerConfig describes the installer layout on the boot machine.
type InstallerConfig struct {
	// WorkDir holds the installer script and its genconf directory.
	WorkDir string `yaml:"work_dir"`
	// Script is the installer script name inside WorkDir.
	Script string `yaml:"script"`
	// SharedMount is a directory visible to the user on the host.
	SharedMount string `yaml:"shared_mount"`
	// WebPort is the port of the web installer service.
	WebPort int `yaml:"web_port"`
	// BootstrapPort is the port the boot machine serves artifacts on
	// for ssh_pull.
	BootstrapPort int `yaml:"bootstrap_port"`
}

// ArchiveConfig configures the S3-compatible artifact archive.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
}
