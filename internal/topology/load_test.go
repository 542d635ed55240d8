package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTopology = `
m1:
  type: master
  ip: 192.168.65.90
  cpus: 2
  memory: 1024
boot:
  type: boot
  ip: 192.168.65.50
  ssh_host: 127.0.0.1
  ssh_port: 2222
a1:
  type: agent-private
  ip: 192.168.65.111
  aliases: [a1.cluster]
p1:
  type: agent-public
  ip: 192.168.65.60
`

func TestParse_KeepsFileOrder(t *testing.T) {
	t.Parallel()
	specs, err := Parse([]byte(sampleTopology))
	require.NoError(t, err)
	require.Len(t, specs, 4)

	assert.Equal(t, "m1", specs[0].Name)
	assert.Equal(t, "boot", specs[1].Name)
	assert.Equal(t, RoleBoot, specs[1].Type)
	assert.Equal(t, 2222, specs[1].SSHPort)
	assert.Equal(t, "127.0.0.1", specs[1].Host())
	assert.Equal(t, "192.168.65.90", specs[0].Host())
	assert.Equal(t, []string{"a1.cluster"}, specs[2].Aliases)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("m1:\n  type: worker\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "worker"`)

	_, err = Parse([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a mapping")

	specs, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestMachineSpec_Machine(t *testing.T) {
	t.Parallel()
	specs, err := Parse([]byte(sampleTopology))
	require.NoError(t, err)

	boot := specs[1].Machine(nil)
	assert.Equal(t, "127.0.0.1", boot.PublicAddress)
	addr, err := ResolveAddress(boot)
	require.NoError(t, err)
	assert.Equal(t, "192.168.65.50", addr)

	master := specs[0].Machine(nil)
	assert.Empty(t, master.PublicAddress)
	assert.Equal(t, 1024, master.Memory)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "machines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTopology), 0o600))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, specs, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read topology file")
}
