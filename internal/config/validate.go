package config

import (
	"fmt"
	"net"
	"path"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !c.InstallMethod.Valid() {
		return fmt.Errorf("invalid install_method %q: must be one of %s, %s, %s",
			c.InstallMethod, MethodSSHPush, MethodSSHPull, MethodWeb)
	}
	if c.MaxInstallThreads < 0 {
		return fmt.Errorf("max_install_threads must be non-negative, got %d", c.MaxInstallThreads)
	}
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		return fmt.Errorf("ssh.port %d is out of range", c.SSH.Port)
	}
	if !path.IsAbs(c.Installer.WorkDir) {
		return fmt.Errorf("installer.work_dir must be an absolute path, got %q", c.Installer.WorkDir)
	}
	if c.PostflightTimeout < 0 {
		return fmt.Errorf("postflight_timeout must be non-negative, got %v", c.PostflightTimeout)
	}
	for _, r := range c.Resolvers {
		if net.ParseIP(r) == nil {
			return fmt.Errorf("resolver %q is not an IP address", r)
		}
	}
	if c.Archive != nil {
		if err := c.Archive.validate(); err != nil {
			return fmt.Errorf("archive validation failed: %w", err)
		}
	}
	return nil
}

func (a *ArchiveConfig) validate() error {
	if a.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if a.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if a.Region == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}
