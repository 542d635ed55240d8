package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadFile reads and parses the configuration from a YAML file.
//
// An empty path falls back to DefaultConfigFile in the working directory,
// and to Default() if that file does not exist either.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		path = DefaultConfigFile
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.ClusterName == "" {
		c.ClusterName = DefaultClusterName
	}
	if c.InstallMethod == "" {
		c.InstallMethod = DefaultInstallMethod
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.MaxInstallThreads == 0 {
		c.MaxInstallThreads = DefaultMaxInstallThreads
	}
	if c.SSH.User == "" {
		c.SSH.User = DefaultSSHUser
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = DefaultSSHPort
	}
	if c.Installer.WorkDir == "" {
		c.Installer.WorkDir = DefaultWorkDir
	}
	if c.Installer.Script == "" {
		c.Installer.Script = DefaultScript
	}
	if c.Installer.SharedMount == "" {
		c.Installer.SharedMount = DefaultSharedMount
	}
	if c.Installer.WebPort == 0 {
		c.Installer.WebPort = DefaultWebPort
	}
	if c.Installer.BootstrapPort == 0 {
		c.Installer.BootstrapPort = DefaultBootstrapPort
	}
	if c.PostflightTimeout == 0 {
		c.PostflightTimeout = DefaultPostflightTimeout
	}
	if c.Archive != nil {
		if c.Archive.AccessKey == "" {
			c.Archive.AccessKey = os.Getenv(EnvArchiveAccessKey)
		}
		if c.Archive.SecretKey == "" {
			c.Archive.SecretKey = os.Getenv(EnvArchiveSecretKey)
		}
	}
}
