package clusterconfig

import (
	"fmt"
	"net"
	"strconv"

	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/topology"
)

const (
	// ZKPort is the coordination service port on the boot machine.
	ZKPort = 2181
	// LocalBootstrapURL is where push and web installs stage artifacts on
	// every node.
	LocalBootstrapURL = "file:///opt/dcos_install_tmp"

	// CloudResolver is the provider metadata-service DNS address.
	CloudResolver = "169.254.169.253"
	// PublicResolver is used when the provider has no metadata service.
	PublicResolver = "8.8.8.8"

	exhibitorStorageBackend = "zookeeper"
	exhibitorZKPath         = "/exhibitor"
	masterDiscovery         = "static"
)

// Resolver returns the address other nodes use to reach a machine.
type Resolver func(m *topology.Machine) (string, error)

// Builder assembles a ClusterConfig.
type Builder struct {
	// Resolve defaults to topology.ResolveAddress.
	Resolve Resolver

	ClusterName string
	// Resolvers, if non-empty, replace the provider default.
	Resolvers []string
	// BootstrapPort is the HTTP port of the boot machine for pull installs.
	BootstrapPort int

	SSHUser    string
	SSHPort    int
	SSHKeyPath string
}

// NewBuilder creates a builder from installer settings.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Resolve:       topology.ResolveAddress,
		ClusterName:   cfg.ClusterName,
		Resolvers:     cfg.Resolvers,
		BootstrapPort: cfg.Installer.BootstrapPort,
		SSHUser:       cfg.SSH.User,
		SSHPort:       cfg.SSH.Port,
		SSHKeyPath:    InstallerSSHKeyPath,
	}
}

// Build generates the cluster configuration for topo.
// Address resolution failures are returned wrapped; they match
// topology.ErrNoAddressFound.
func (b *Builder) Build(topo *topology.Topology, method config.InstallMethod, provider config.Provider) (*ClusterConfig, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("invalid install method %q", method)
	}
	resolve := b.Resolve
	if resolve == nil {
		resolve = topology.ResolveAddress
	}

	boot := topo.Boot()
	if boot == nil {
		return nil, fmt.Errorf("topology has no boot machine")
	}
	bootAddress, err := resolve(boot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve boot address: %w", err)
	}

	masters, err := resolveAll(resolve, topo.ByRole(topology.RoleMaster))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve master addresses: %w", err)
	}
	agents, err := resolveAll(resolve, topo.ByRole(topology.RoleAgentPrivate, topology.RoleAgentPublic))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent addresses: %w", err)
	}

	c := &ClusterConfig{
		ClusterName:             b.ClusterName,
		BootstrapURL:            b.bootstrapURL(method, bootAddress),
		ExhibitorStorageBackend: exhibitorStorageBackend,
		ExhibitorZKHosts:        net.JoinHostPort(bootAddress, strconv.Itoa(ZKPort)),
		ExhibitorZKPath:         exhibitorZKPath,
		MasterDiscovery:         masterDiscovery,
		MasterList:              masters,
		AgentList:               agents,
		Resolvers:               b.resolvers(provider),
	}
	if method == config.MethodSSHPush {
		c.SSHUser = b.SSHUser
		c.SSHPort = b.SSHPort
		c.SSHKeyPath = b.SSHKeyPath
	}
	return c, nil
}

func (b *Builder) bootstrapURL(method config.InstallMethod, bootAddress string) string {
	if method != config.MethodSSHPull {
		return LocalBootstrapURL
	}
	if b.BootstrapPort == 0 || b.BootstrapPort == 80 {
		return "http://" + bootAddress
	}
	return "http://" + net.JoinHostPort(bootAddress, strconv.Itoa(b.BootstrapPort))
}

func (b *Builder) resolvers(provider config.Provider) []string {
	if len(b.Resolvers) > 0 {
		out := make([]string, len(b.Resolvers))
		copy(out, b.Resolvers)
		return out
	}
	if provider.Cloud() {
		return []string{CloudResolver}
	}
	return []string{PublicResolver}
}

func resolveAll(resolve Resolver, machines []*topology.Machine) ([]string, error) {
	out := make([]string, 0, len(machines))
	for _, m := range machines {
		addr, err := resolve(m)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}
