package clusterconfig

import (
	"bytes"
	"fmt"
	"path"
	"text/template"
)

// Files the installer reads from its genconf directory.
const (
	ConfigFile   = "config.yaml"
	IPDetectFile = "ip-detect"
	SSHKeyFile   = "ssh_key"

	// InstallerSSHKeyPath is where the installer sees the shared key.
	InstallerSSHKeyPath = "/genconf/" + SSHKeyFile
)

// GenconfDir returns the genconf directory under workDir.
func GenconfDir(workDir string) string {
	return path.Join(workDir, "genconf")
}

// GenconfPath returns the path of a genconf file under workDir.
func GenconfPath(workDir, name string) string {
	return path.Join(GenconfDir(workDir), name)
}

var ipDetectTemplate = template.Must(template.New("ip-detect").Parse(`#!/usr/bin/env bash
# Prints the address of this machine on the route towards the first master.
set -o nounset -o errexit -o pipefail

ip route get {{.}} | awk '{for (i = 1; i < NF; i++) if ($i == "src") { print $(i+1); exit }}'
`))

// IPDetectScript renders the address-detection script for c. The script
// prints the source address the machine uses to reach the first master.
func IPDetectScript(c *ClusterConfig) ([]byte, error) {
	target := c.FirstMaster()
	if target == "" {
		return nil, fmt.Errorf("cluster config has no master address")
	}
	var buf bytes.Buffer
	if err := ipDetectTemplate.Execute(&buf, target); err != nil {
		return nil, fmt.Errorf("failed to render ip-detect script: %w", err)
	}
	return buf.Bytes(), nil
}
