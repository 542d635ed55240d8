package install

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostflightScript(t *testing.T) {
	t.Parallel()
	tests := []struct {
		budget time.Duration
		want   string
	}{
		{900 * time.Second, "T=900\n"},
		{7 * time.Second, "T=10\n"},
		{1500 * time.Millisecond, "T=5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.budget.String(), func(t *testing.T) {
			t.Parallel()
			script, err := postflightScript(tt.budget)
			require.NoError(t, err)
			assert.Contains(t, script, tt.want)
			assert.Contains(t, script, "sleep 5\n")
			assert.Contains(t, script, "let T=T-5\n")
		})
	}
}

func TestPostflightScript_PrefersNewerBinary(t *testing.T) {
	t.Parallel()
	script, err := postflightScript(time.Minute)
	require.NoError(t, err)

	newer := strings.Index(script, "dcos-diagnostics")
	legacy := strings.Index(script, "/opt/mesosphere/bin/3dt")
	require.Positive(t, newer)
	require.Positive(t, legacy)
	assert.Less(t, newer, legacy)
	assert.Contains(t, script, "exit 1\n", "fails fast without a binary")
	assert.True(t, strings.HasSuffix(script, "exit ${RETCODE}\n"))
}

func TestNodeInstallScript(t *testing.T) {
	t.Parallel()
	script, err := nodeInstallScript("http://10.0.0.2:8080", roleArgSlavePublic)
	require.NoError(t, err)
	assert.Contains(t, script, "http://10.0.0.2:8080/dcos_install.sh")
	assert.Contains(t, script, "bash dcos_install.sh slave_public\n")
}

func TestAuthorizeScript(t *testing.T) {
	t.Parallel()
	script, err := authorizeScript("centos", []byte("ssh-rsa AAAA key\n\n"))
	require.NoError(t, err)
	assert.Contains(t, script, `getent passwd centos`)
	assert.Contains(t, script, `grep -qxF 'ssh-rsa AAAA key'`)
}

func TestBootstrapServeScript(t *testing.T) {
	t.Parallel()
	script, err := bootstrapServeScript("/opt/dcos", 80)
	require.NoError(t, err)
	assert.Contains(t, script, "--publish 80:80")
	assert.Contains(t, script, "--volume /opt/dcos/genconf/serve:/usr/share/nginx/html:ro")
}

func TestInstallerCommand(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "cd /opt/dcos && bash dcos_generate_config.sh",
		installerCommand("/opt/dcos", "dcos_generate_config.sh"))
	assert.Equal(t, "cd /opt/dcos && bash dcos_generate_config.sh --deploy",
		installerCommand("/opt/dcos", "dcos_generate_config.sh", "--deploy"))
}
