package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "clusterup", cmd.Use)
	assert.True(t, cmd.SilenceErrors)

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, expected := range []string{"init", "install", "validate", "render", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestInstall_Flags(t *testing.T) {
	cmd := Install()

	topo := cmd.Flags().Lookup("topology")
	require.NotNil(t, topo)
	assert.Equal(t, "t", topo.Shorthand)
	assert.Equal(t, "machines.yaml", topo.DefValue)

	cfg := cmd.Flags().Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "c", cfg.Shorthand)
	assert.Equal(t, "", cfg.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("metrics-file"))
	assert.NotNil(t, cmd.Flags().Lookup("no-tui"))
	assert.NotNil(t, cmd.RunE)
}

func TestRender_Flags(t *testing.T) {
	cmd := Render()
	assert.NotNil(t, cmd.Flags().Lookup("method"))
	assert.NotNil(t, cmd.Flags().Lookup("topology"))
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "clusterup 1.2.3")
	assert.Contains(t, out.String(), "commit: abc123")
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "clusterup.yaml", output.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("advanced"))
	assert.NotNil(t, cmd.Flags().Lookup("full"))
}
