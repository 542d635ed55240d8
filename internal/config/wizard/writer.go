package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/clusterup/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// If fullOutput is false, only values that differ from the defaults are
// written.
func WriteConfig(cfg *config.Config, outputPath string, fullOutput bool) error {
	var yamlBytes []byte
	var err error

	if fullOutput {
		yamlBytes, err = yaml.Marshal(cfg)
	} else {
		yamlBytes, err = yaml.Marshal(buildMinimalConfig(cfg))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, fullOutput))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// MinimalConfig represents the minimal configuration for YAML output.
type MinimalConfig struct {
	ClusterName       string                  `yaml:"cluster_name"`
	InstallMethod     config.InstallMethod    `yaml:"install_method"`
	Provider          config.Provider         `yaml:"provider"`
	MaxInstallThreads int                     `yaml:"max_install_threads,omitempty"`
	SSH               MinimalSSHConfig        `yaml:"ssh"`
	Installer         *MinimalInstallerConfig `yaml:"installer,omitempty"`
	Resolvers         []string                `yaml:"resolvers,omitempty"`
	PostflightTimeout string                  `yaml:"postflight_timeout,omitempty"`
}

// MinimalSSHConfig contains the SSH settings.
type MinimalSSHConfig struct {
	User           string `yaml:"user"`
	KeyPath        string `yaml:"key_path,omitempty"`
	Port           int    `yaml:"port,omitempty"`
	ClusterKeyPath string `yaml:"cluster_key_path,omitempty"`
}

// MinimalInstallerConfig contains installer settings if customized.
type MinimalInstallerConfig struct {
	WorkDir       string `yaml:"work_dir,omitempty"`
	SharedMount   string `yaml:"shared_mount,omitempty"`
	WebPort       int    `yaml:"web_port,omitempty"`
	BootstrapPort int    `yaml:"bootstrap_port,omitempty"`
}

// buildMinimalConfig creates a minimal config from the full config.
func buildMinimalConfig(cfg *config.Config) *MinimalConfig {
	minCfg := &MinimalConfig{
		ClusterName:   cfg.ClusterName,
		InstallMethod: cfg.InstallMethod,
		Provider:      cfg.Provider,
		Resolvers:     cfg.Resolvers,
		SSH: MinimalSSHConfig{
			User:           cfg.SSH.User,
			KeyPath:        cfg.SSH.KeyPath,
			ClusterKeyPath: cfg.SSH.ClusterKeyPath,
		},
	}

	if cfg.MaxInstallThreads != config.DefaultMaxInstallThreads {
		minCfg.MaxInstallThreads = cfg.MaxInstallThreads
	}
	if cfg.SSH.Port != config.DefaultSSHPort {
		minCfg.SSH.Port = cfg.SSH.Port
	}
	if cfg.PostflightTimeout != config.DefaultPostflightTimeout {
		minCfg.PostflightTimeout = cfg.PostflightTimeout.String()
	}

	inst := MinimalInstallerConfig{}
	if cfg.Installer.WorkDir != config.DefaultWorkDir {
		inst.WorkDir = cfg.Installer.WorkDir
	}
	if cfg.Installer.SharedMount != config.DefaultSharedMount {
		inst.SharedMount = cfg.Installer.SharedMount
	}
	if cfg.Installer.WebPort != config.DefaultWebPort {
		inst.WebPort = cfg.Installer.WebPort
	}
	if cfg.Installer.BootstrapPort != config.DefaultBootstrapPort {
		inst.BootstrapPort = cfg.Installer.BootstrapPort
	}
	if inst != (MinimalInstallerConfig{}) {
		minCfg.Installer = &inst
	}

	return minCfg
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string, fullOutput bool) string {
	mode := "minimal"
	note := "\n# Note: This is a minimal config. Use --full flag for all options."
	if fullOutput {
		mode = "full"
		note = ""
	}
	return fmt.Sprintf(`# clusterup installer configuration
# Generated by: clusterup init
# Generated at: %s
# Output mode: %s%s
#
# Usage:
#   clusterup validate -t machines.yaml
#   clusterup install -c %s -t machines.yaml
`, time.Now().Format(time.RFC3339), mode, note, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
