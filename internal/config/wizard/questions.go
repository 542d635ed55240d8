package wizard

import (
	"context"
	"net"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/imamik/clusterup/internal/config"
)

// clusterNameRegex validates cluster name format: 1-32 lowercase alphanumeric with hyphens.
var clusterNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// runClusterIdentityGroup prompts for cluster name, install method and provider.
func runClusterIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.InstallMethod = config.DefaultInstallMethod
	result.Provider = config.DefaultProvider

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder(config.DefaultClusterName).
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[config.InstallMethod]().
				Title("Install Method").
				Description("How the boot machine installs the other nodes").
				Options(MethodsToOptions()...).
				Value(&result.InstallMethod),
			huh.NewSelect[config.Provider]().
				Title("Provider").
				Description("Where the machines run; selects the default DNS resolvers").
				Options(ProvidersToOptions()...).
				Value(&result.Provider),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runSSHAccessGroup prompts for the login user and keys.
func runSSHAccessGroup(ctx context.Context, result *WizardResult) error {
	result.SSHUser = config.DefaultSSHUser

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSH User").
				Description("User with passwordless sudo on every machine").
				Value(&result.SSHUser).
				Validate(validateRequired(errUserRequired)),
			huh.NewInput().
				Title("Login Key").
				Description("Private key used to log in to every machine").
				Placeholder("~/.vagrant.d/insecure_private_key").
				Value(&result.SSHKeyPath).
				Validate(validateRequired(errKeyPathRequired)),
			huh.NewInput().
				Title("Cluster Key (Optional)").
				Description("Key the boot machine uses to reach the nodes. Leave empty to generate one per run.").
				Value(&result.ClusterKeyPath),
		).Title("SSH Access"),
	).RunWithContext(ctx)
}

// runExecutionGroup prompts for concurrency and the postflight budget.
func runExecutionGroup(ctx context.Context, result *WizardResult) error {
	result.MaxInstallThreads = config.DefaultMaxInstallThreads
	postflight := config.DefaultPostflightTimeout.String()

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Install Threads").
				Description("Machines installed at the same time within a phase").
				Options(ThreadOptions...).
				Value(&result.MaxInstallThreads),
			huh.NewInput().
				Title("Postflight Timeout").
				Description("Health-check budget per machine").
				Value(&postflight).
				Validate(validateDuration),
		).Title("Execution"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.PostflightTimeout, _ = time.ParseDuration(postflight)
	return nil
}

// runAdvancedGroup prompts for installer layout and resolvers.
func runAdvancedGroup(ctx context.Context, result *WizardResult) error {
	opts := result.AdvancedOptions
	opts.WorkDir = config.DefaultWorkDir
	opts.SharedMount = config.DefaultSharedMount
	webPort := strconv.Itoa(config.DefaultWebPort)
	bootstrapPort := strconv.Itoa(config.DefaultBootstrapPort)
	var resolvers string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Installer Directory").
				Description("Directory holding the installer script on the boot machine").
				Value(&opts.WorkDir).
				Validate(validateAbsPath),
			huh.NewInput().
				Title("Shared Mount").
				Description("Directory on the boot machine visible from the host").
				Value(&opts.SharedMount).
				Validate(validateAbsPath),
			huh.NewInput().
				Title("Web Installer Port").
				Value(&webPort).
				Validate(validatePort),
			huh.NewInput().
				Title("Bootstrap Port").
				Description("Port the boot machine serves install artifacts on").
				Value(&bootstrapPort).
				Validate(validatePort),
			huh.NewInput().
				Title("DNS Resolvers (Optional)").
				Description("Comma-separated IPs. Leave empty for the provider default.").
				Value(&resolvers).
				Validate(validateResolvers),
		).Title("Advanced Options"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	opts.WebPort, _ = strconv.Atoi(webPort)
	opts.BootstrapPort, _ = strconv.Atoi(bootstrapPort)
	opts.Resolvers = parseList(resolvers)
	return nil
}

// validateClusterName validates the cluster name input.
func validateClusterName(s string) error {
	if s == "" {
		return errClusterNameRequired
	}
	if !clusterNameRegex.MatchString(s) {
		return errClusterNameInvalid
	}
	return nil
}

func validateRequired(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return errDurationInvalid
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return errPortInvalid
	}
	return nil
}

func validateAbsPath(s string) error {
	if !path.IsAbs(s) {
		return errPathNotAbsolute
	}
	return nil
}

func validateResolvers(s string) error {
	for _, r := range parseList(s) {
		if net.ParseIP(r) == nil {
			return errResolverInvalid
		}
	}
	return nil
}

// parseList splits a comma-separated input, dropping empty entries.
func parseList(input string) []string {
	if input == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
