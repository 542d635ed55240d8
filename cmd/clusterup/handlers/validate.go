package handlers

import (
	"fmt"

	"github.com/imamik/clusterup/internal/topology"
)

// Validate checks the topology file at path and prints a summary.
func Validate(path string) error {
	_, topo, err := loadTopology(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, successStyle.Render(fmt.Sprintf("Topology %s is valid", path)))
	for _, role := range topology.Roles {
		fmt.Fprintf(stdout, "  %-14s %d\n", role, len(topo.ByRole(role)))
	}
	return nil
}
