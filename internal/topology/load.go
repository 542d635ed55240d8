package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineSpec is one entry of the machine topology file.
type MachineSpec struct {
	Name    string   `yaml:"-"`
	Type    Role     `yaml:"type"`
	IP      string   `yaml:"ip"`
	CPUs    int      `yaml:"cpus,omitempty"`
	Memory  int      `yaml:"memory,omitempty"`
	Box     string   `yaml:"box,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`

	// SSHHost is the provider-reported address used to reach the machine.
	// Defaults to IP.
	SSHHost string `yaml:"ssh_host,omitempty"`
	SSHPort int    `yaml:"ssh_port,omitempty"`
}

// LoadFile reads a topology file. Entries are returned in file order.
func LoadFile(path string) ([]MachineSpec, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a topology document: a mapping from machine name to spec.
func Parse(data []byte) ([]MachineSpec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("topology must be a mapping of machine name to machine, got line %d", root.Line)
	}

	specs := make([]MachineSpec, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var spec MachineSpec
		if err := root.Content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("failed to decode machine %q: %w", name, err)
		}
		spec.Name = name
		if !spec.Type.Valid() {
			return nil, fmt.Errorf("machine %q has unknown type %q", name, spec.Type)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Machine converts the parsed entry into a Machine using comm as its channel.
func (s MachineSpec) Machine(comm Communicator) *Machine {
	m := &Machine{
		Name:          s.Name,
		Role:          s.Type,
		PublicAddress: s.SSHHost,
		CPUs:          s.CPUs,
		Memory:        s.Memory,
		Box:           s.Box,
		Aliases:       s.Aliases,
		Comm:          comm,
	}
	if s.IP != "" {
		m.Networks = append(m.Networks, Network{Kind: NetworkPrivate, IP: s.IP})
	}
	return m
}

// Host returns the host the remote channel should dial.
func (s MachineSpec) Host() string {
	if s.SSHHost != "" {
		return s.SSHHost
	}
	return s.IP
}
