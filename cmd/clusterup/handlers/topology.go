package handlers

import (
	"fmt"

	"github.com/imamik/clusterup/internal/topology"
)

// DefaultTopologyFile is the topology read when no path is given.
const DefaultTopologyFile = "machines.yaml"

// buildTopology turns specs into a topology. connect, if not nil, creates
// the communicator of each machine.
func buildTopology(specs []topology.MachineSpec, connect func(topology.MachineSpec) (topology.Communicator, error)) (*topology.Topology, error) {
	machines := make([]*topology.Machine, 0, len(specs))
	for _, spec := range specs {
		var comm topology.Communicator
		if connect != nil {
			c, err := connect(spec)
			if err != nil {
				return nil, fmt.Errorf("failed to set up connection to %s: %w", spec.Name, err)
			}
			comm = c
		}
		machines = append(machines, spec.Machine(comm))
	}
	return topology.New(machines...)
}

// loadTopology reads and validates the topology at path without connecting
// to any machine.
func loadTopology(path string) ([]topology.MachineSpec, *topology.Topology, error) {
	specs, err := loadTopologyFile(path)
	if err != nil {
		return nil, nil, err
	}
	topo, err := buildTopology(specs, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := topo.Validate(); err != nil {
		return nil, nil, err
	}
	return specs, topo, nil
}
