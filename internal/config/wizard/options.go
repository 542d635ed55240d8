package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/clusterup/internal/config"
)

// MethodOption describes one install method.
type MethodOption struct {
	Value       config.InstallMethod
	Label       string
	Description string
}

// ProviderOption describes one machine provider.
type ProviderOption struct {
	Value       config.Provider
	Label       string
	Description string
}

// Methods lists every install method in the order they are offered.
var Methods = []MethodOption{
	{Value: config.MethodSSHPull, Label: "ssh_pull", Description: "nodes fetch artifacts from the boot machine"},
	{Value: config.MethodSSHPush, Label: "ssh_push", Description: "the installer deploys nodes over SSH"},
	{Value: config.MethodWeb, Label: "web", Description: "start the web installer and stop"},
}

// Providers lists every supported machine provider.
var Providers = []ProviderOption{
	{Value: config.ProviderVirtualBox, Label: "virtualbox", Description: "local VMs, public DNS resolver"},
	{Value: config.ProviderAWS, Label: "aws", Description: "cloud VMs, VPC resolver"},
}

// ThreadOptions are the offered worker pool sizes.
var ThreadOptions = []huh.Option[int]{
	huh.NewOption("1 (sequential)", 1),
	huh.NewOption("2", 2),
	huh.NewOption("4 (Recommended)", 4),
	huh.NewOption("8", 8),
	huh.NewOption("16", 16),
}

// MethodsToOptions converts Methods to huh options.
func MethodsToOptions() []huh.Option[config.InstallMethod] {
	opts := make([]huh.Option[config.InstallMethod], len(Methods))
	for i, m := range Methods {
		opts[i] = huh.NewOption(m.Label+" - "+m.Description, m.Value)
	}
	return opts
}

// ProvidersToOptions converts Providers to huh options.
func ProvidersToOptions() []huh.Option[config.Provider] {
	opts := make([]huh.Option[config.Provider], len(Providers))
	for i, p := range Providers {
		opts[i] = huh.NewOption(p.Label+" - "+p.Description, p.Value)
	}
	return opts
}
