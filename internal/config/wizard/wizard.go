package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/clusterup/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Cluster Identity
	ClusterName   string
	InstallMethod config.InstallMethod
	Provider      config.Provider

	// SSH Access
	SSHUser    string
	SSHKeyPath string
	// ClusterKeyPath is optional. If empty, a key is generated per run.
	ClusterKeyPath string

	// Execution
	MaxInstallThreads int
	PostflightTimeout time.Duration

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	WorkDir       string
	SharedMount   string
	WebPort       int
	BootstrapPort int
	Resolvers     []string
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runClusterIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	if err := runSSHAccessGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("ssh access: %w", err)
	}

	if err := runExecutionGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("execution: %w", err)
	}

	if advanced {
		result.AdvancedOptions = &AdvancedOptions{}
		if err := runAdvancedGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("advanced options: %w", err)
		}
	}

	return result, nil
}
