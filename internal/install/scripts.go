package install

import (
	"bytes"
	"fmt"
	"path"
	"text/template"
	"time"
)

const (
	webServiceName = "dcos-web-installer.service"
	webUnitPath    = "/etc/systemd/system/" + webServiceName

	bootstrapContainer = "clusterup-bootstrap"

	postflightScriptPath = "/tmp/clusterup-postflight.sh"
	// postflightInterval is the sleep between remote health checks.
	postflightInterval = 5 * time.Second
)

var (
	authorizeTemplate = template.Must(template.New("authorize").Parse(`set -o errexit -o nounset
HOME_DIR="$(getent passwd {{.User}} | cut -d: -f6)"
install -d -m 0700 -o {{.User}} "${HOME_DIR}/.ssh"
touch "${HOME_DIR}/.ssh/authorized_keys"
grep -qxF '{{.Key}}' "${HOME_DIR}/.ssh/authorized_keys" || echo '{{.Key}}' >> "${HOME_DIR}/.ssh/authorized_keys"
chown {{.User}} "${HOME_DIR}/.ssh/authorized_keys"
chmod 0600 "${HOME_DIR}/.ssh/authorized_keys"
`))

	webUnitTemplate = template.Must(template.New("web-unit").Parse(`[Unit]
Description=DC/OS web installer
After=network-online.target docker.service
Requires=docker.service

[Service]
Type=simple
WorkingDirectory={{.WorkDir}}
ExecStart=/usr/bin/env bash {{.Installer}} --web
Restart=on-failure

[Install]
WantedBy=multi-user.target
`))

	bootstrapServeTemplate = template.Must(template.New("bootstrap-serve").Parse(`set -o errexit
docker rm -f {{.Container}} >/dev/null 2>&1 || true
docker run --detach --restart=always --name {{.Container}} --publish {{.Port}}:80 --volume {{.ServeDir}}:/usr/share/nginx/html:ro nginx
`))

	nodeInstallTemplate = template.Must(template.New("node-install").Parse(`set -o errexit -o pipefail
mkdir -p /tmp/dcos
cd /tmp/dcos
curl --fail --location --silent --show-error --output dcos_install.sh {{.BootstrapURL}}/dcos_install.sh
bash dcos_install.sh {{.Role}}
`))

	// The loop runs on the node so a slow cluster does not cost one round
	// trip per check. RETCODE is the status of the loop, which is that of
	// the last "let": a check that first passes after the budget reached
	// zero still exits 1.
	postflightTemplate = template.Must(template.New("postflight").Parse(`#!/usr/bin/env bash
if [ -x /opt/mesosphere/bin/dcos-diagnostics ]; then
  CHECK='/opt/mesosphere/bin/dcos-diagnostics --diag'
elif [ -x /opt/mesosphere/bin/3dt ]; then
  CHECK='/opt/mesosphere/bin/3dt --diag'
else
  echo "postflight: no health check binary found" >&2
  exit 1
fi

T={{.Budget}}
until OUT=$(${CHECK} 2>&1) || [[ T -eq 0 ]]; do
  sleep {{.Interval}}
  let T=T-{{.Interval}}
done
RETCODE=$?
if [[ ${RETCODE} -ne 0 ]]; then
  echo "${OUT}" >&2
fi
exit ${RETCODE}
`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s script: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func authorizeScript(user string, publicKey []byte) (string, error) {
	return render(authorizeTemplate, struct {
		User string
		Key  string
	}{user, string(bytes.TrimSpace(publicKey))})
}

func webUnit(workDir, script string) (string, error) {
	return render(webUnitTemplate, struct {
		WorkDir   string
		Installer string
	}{workDir, path.Join(workDir, script)})
}

func bootstrapServeScript(workDir string, port int) (string, error) {
	return render(bootstrapServeTemplate, struct {
		Container string
		Port      int
		ServeDir  string
	}{bootstrapContainer, port, path.Join(workDir, "genconf", "serve")})
}

func nodeInstallScript(bootstrapURL, role string) (string, error) {
	return render(nodeInstallTemplate, struct {
		BootstrapURL string
		Role         string
	}{bootstrapURL, role})
}

// postflightScript renders the remote health check with budget rounded up
// to a whole number of intervals, so the countdown reaches zero exactly.
func postflightScript(budget time.Duration) (string, error) {
	interval := int(postflightInterval / time.Second)
	secs := int((budget + time.Second - 1) / time.Second)
	if rem := secs % interval; rem != 0 {
		secs += interval - rem
	}
	return render(postflightTemplate, struct {
		Budget   int
		Interval int
	}{secs, interval})
}

// installerCommand runs the installer script in workDir with args.
func installerCommand(workDir, script string, args ...string) string {
	cmd := fmt.Sprintf("cd %s && bash %s", workDir, script)
	for _, a := range args {
		cmd += " " + a
	}
	return cmd
}
