package clusterconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ClusterConfig is the generated installer configuration.
type ClusterConfig struct {
	ClusterName             string   `yaml:"cluster_name"`
	BootstrapURL            string   `yaml:"bootstrap_url"`
	ExhibitorStorageBackend string   `yaml:"exhibitor_storage_backend"`
	ExhibitorZKHosts        string   `yaml:"exhibitor_zk_hosts"`
	ExhibitorZKPath         string   `yaml:"exhibitor_zk_path"`
	MasterDiscovery         string   `yaml:"master_discovery"`
	MasterList              []string `yaml:"master_list"`
	AgentList               []string `yaml:"agent_list"`
	Resolvers               []string `yaml:"resolvers"`

	// SSH settings are only used by the push installer, which connects from
	// the boot machine to every other node.
	SSHUser    string `yaml:"ssh_user,omitempty"`
	SSHPort    int    `yaml:"ssh_port,omitempty"`
	SSHKeyPath string `yaml:"ssh_key_path,omitempty"`
}

// Render serializes the configuration to YAML.
func (c *ClusterConfig) Render() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render cluster config: %w", err)
	}
	return data, nil
}

// Parse decodes a rendered cluster configuration.
func Parse(data []byte) (*ClusterConfig, error) {
	var c ClusterConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse cluster config: %w", err)
	}
	return &c, nil
}

// FirstMaster returns the first master address, or "".
func (c *ClusterConfig) FirstMaster() string {
	if len(c.MasterList) == 0 {
		return ""
	}
	return c.MasterList[0]
}
