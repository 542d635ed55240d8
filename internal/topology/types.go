package topology

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Role is the cluster role category of a machine.
type Role string

// Machine roles.
const (
	RoleBoot         Role = "boot"
	RoleMaster       Role = "master"
	RoleAgentPrivate Role = "agent-private"
	RoleAgentPublic  Role = "agent-public"
)

// Roles lists every known role in validation order.
var Roles = []Role{RoleBoot, RoleMaster, RoleAgentPrivate, RoleAgentPublic}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBoot, RoleMaster, RoleAgentPrivate, RoleAgentPublic:
		return true
	}
	return false
}

// NetworkKind identifies how a machine network is attached.
type NetworkKind string

// Network kinds.
const (
	NetworkPrivate       NetworkKind = "private_network"
	NetworkForwardedPort NetworkKind = "forwarded_port"
)

// Network is one configured network attachment of a machine.
type Network struct {
	Kind NetworkKind
	IP   string
}

// Communicator executes commands on a single machine.
// Implemented by internal/platform/ssh.Client.
type Communicator interface {
	// Run executes command as an elevated user, streaming its output to
	// stdout and stderr. The returned int is the remote exit status; the
	// error is non-nil only when the command could not be run at all.
	Run(ctx context.Context, command string, stdout, stderr io.Writer) (int, error)

	// Upload writes content to path on the machine with the given mode,
	// creating parent directories as needed.
	Upload(ctx context.Context, path string, content []byte, mode os.FileMode) error
}

// Machine is a provisioned node. It is read-only for the duration of a run.
type Machine struct {
	Name string
	Role Role

	// PublicAddress is the address reported by the provider layer. Local
	// providers often report the loopback address here.
	PublicAddress string
	Networks      []Network

	CPUs    int
	Memory  int
	Box     string
	Aliases []string

	Comm Communicator
}

// String implements fmt.Stringer.
func (m *Machine) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Role)
}

// PrivateIP returns the IP of the first private network, or "".
func (m *Machine) PrivateIP() string {
	for _, n := range m.Networks {
		if n.Kind == NetworkPrivate && n.IP != "" {
			return n.IP
		}
	}
	return ""
}
