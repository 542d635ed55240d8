package install

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/imamik/clusterup/internal/clusterconfig"
	"github.com/imamik/clusterup/internal/topology"
	"github.com/imamik/clusterup/internal/util/poll"
)

// deployWeb starts the web installer on the boot machine and waits for it
// to answer. The run ends there; the user finishes the install in the UI.
func (r *run) deployWeb(ctx context.Context) error {
	workDir := r.cfg.Installer.WorkDir
	shared := r.cfg.Installer.SharedMount + "/etc"

	relocate := fmt.Sprintf("mkdir -p %s && cp %s %s %s/",
		shared,
		clusterconfig.GenconfPath(workDir, clusterconfig.ConfigFile),
		clusterconfig.GenconfPath(workDir, clusterconfig.IPDetectFile),
		shared)
	if err := r.bootCommand(ctx, "relocate", relocate); err != nil {
		return err
	}

	unit, err := webUnit(workDir, r.cfg.Installer.Script)
	if err != nil {
		return err
	}
	if err := r.boot.Comm.Upload(ctx, webUnitPath, []byte(unit), 0o644); err != nil {
		return &DistributionError{Machine: r.boot.Name, Path: webUnitPath, Err: err}
	}
	if err := r.bootCommand(ctx, "start", "systemctl daemon-reload && systemctl start "+webServiceName); err != nil {
		return err
	}

	address := "http://" + net.JoinHostPort(r.bootAddress, strconv.Itoa(r.cfg.Installer.WebPort))
	r.observer.Printf("Waiting up to %v for the web installer at %s", r.timeouts.WebInstaller, address)

	check := func(ctx context.Context) (bool, error) { return r.probe(ctx, address) }
	err = poll.UntilReady(ctx, check, r.timeouts.WebInstaller, r.timeouts.PollInterval)
	if err != nil {
		if !errors.Is(err, poll.ErrTimeout) {
			return err
		}
		return &ReadinessTimeoutError{Address: address, Status: r.serviceStatus(ctx), Err: err}
	}

	r.report.InstallerAddress = address
	r.observer.Printf("Web installer is available at %s", address)
	return nil
}

// serviceStatus captures the installer service status for diagnostics.
// Errors are folded into the returned text.
func (r *run) serviceStatus(ctx context.Context) string {
	var out strings.Builder
	_, err := r.boot.Comm.Run(ctx, "systemctl status "+webServiceName+" --no-pager", &out, &out)
	if err != nil {
		return fmt.Sprintf("status unavailable: %v", err)
	}
	return out.String()
}

// deployPush runs the installer's own preflight, deploy and postflight steps
// from the boot machine, one after another.
func (r *run) deployPush(ctx context.Context) error {
	for _, step := range []string{"--preflight", "--deploy", "--postflight"} {
		cmd := installerCommand(r.cfg.Installer.WorkDir, r.cfg.Installer.Script, step)
		if err := r.bootCommand(ctx, strings.TrimPrefix(step, "--"), cmd); err != nil {
			return err
		}
	}
	return nil
}

// deployPull serves the install artifacts from the boot machine, then
// installs masters and agents in two executor phases.
func (r *run) deployPull(ctx context.Context) error {
	if err := r.bootCommand(ctx, "genconf", installerCommand(r.cfg.Installer.WorkDir, r.cfg.Installer.Script)); err != nil {
		return err
	}
	serve, err := bootstrapServeScript(r.cfg.Installer.WorkDir, r.cfg.Installer.BootstrapPort)
	if err != nil {
		return err
	}
	if err := r.bootCommand(ctx, "serve", serve); err != nil {
		return err
	}

	masters := machineTasks(KindInstall, roleArgMaster, r.topo.ByRole(topology.RoleMaster))
	if err := r.runTasks(ctx, PhaseMasters, masters); err != nil {
		return err
	}

	agents := append(
		machineTasks(KindInstall, roleArgSlave, r.topo.ByRole(topology.RoleAgentPrivate)),
		machineTasks(KindInstall, roleArgSlavePublic, r.topo.ByRole(topology.RoleAgentPublic))...,
	)
	return r.runTasks(ctx, PhaseAgents, agents)
}

func (r *run) installMachine(ctx context.Context, m *topology.Machine, role string) error {
	script, err := nodeInstallScript(r.cluster.BootstrapURL, role)
	if err != nil {
		return err
	}
	status, tail, err := r.exec(ctx, m, KindInstall, script)
	if err != nil {
		return err
	}
	if status != 0 {
		return fmt.Errorf("install exited with status %d: %s", status, tail)
	}
	return nil
}

// postflight verifies every installed node.
func (r *run) postflight(ctx context.Context) error {
	tasks := machineTasks(KindPostflight, "",
		r.topo.ByRole(topology.RoleMaster, topology.RoleAgentPrivate, topology.RoleAgentPublic))
	return r.runTasks(ctx, PhasePostflight, tasks)
}

// verifyMachine uploads the health check script and runs it once. The
// retry loop runs on the machine.
func (r *run) verifyMachine(ctx context.Context, m *topology.Machine) error {
	script, err := postflightScript(r.timeouts.PostflightBudget(r.cfg.PostflightTimeout))
	if err != nil {
		return err
	}
	if err := m.Comm.Upload(ctx, postflightScriptPath, []byte(script), 0o755); err != nil {
		return fmt.Errorf("failed to upload postflight script: %w", err)
	}
	status, tail, err := r.exec(ctx, m, KindPostflight, "chmod 0755 "+postflightScriptPath+" && "+postflightScriptPath)
	if err != nil {
		return err
	}
	if status != 0 {
		return fmt.Errorf("postflight exited with status %d: %s", status, tail)
	}
	return nil
}
