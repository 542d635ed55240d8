package install

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/imamik/clusterup/internal/clusterconfig"
	"github.com/imamik/clusterup/internal/topology"
)

type upload struct {
	path    string
	content []byte
	mode    os.FileMode
}

// generate builds and renders the cluster config and the ip-detect script.
func (r *run) generate(ctx context.Context) error {
	cluster, err := clusterconfig.NewBuilder(r.cfg).Build(r.topo, r.cfg.InstallMethod, r.cfg.Provider)
	if err != nil {
		return err
	}
	rendered, err := cluster.Render()
	if err != nil {
		return err
	}
	ipDetect, err := clusterconfig.IPDetectScript(cluster)
	if err != nil {
		return err
	}

	r.boot = r.topo.Boot()
	r.bootAddress, err = topology.ResolveAddress(r.boot)
	if err != nil {
		return fmt.Errorf("failed to resolve boot address: %w", err)
	}
	r.cluster = cluster
	r.rendered = rendered
	r.ipDetect = ipDetect

	r.observer.Printf("Generated config for %d masters and %d agents (bootstrap: %s)",
		len(cluster.MasterList), len(cluster.AgentList), cluster.BootstrapURL)

	if r.archive == nil {
		return nil
	}
	for _, a := range []struct {
		name string
		body []byte
	}{
		{clusterconfig.ConfigFile, rendered},
		{clusterconfig.IPDetectFile, ipDetect},
	} {
		key := path.Join(r.runID, a.name)
		if err := r.archive.Put(ctx, key, a.body); err != nil {
			return &DistributionError{Machine: "archive", Path: key, Err: err}
		}
	}
	r.observer.Printf("Archived artifacts under %s", r.runID)
	return nil
}

// distribute authorizes a generated credential if needed, then uploads the
// installer inputs to the boot machine.
func (r *run) distribute(ctx context.Context) error {
	if len(r.credential.AuthorizedKey) > 0 {
		tasks := machineTasks(KindAuthorize, "", r.topo.Machines())
		if err := r.runTasks(ctx, PhaseAuthorize, tasks); err != nil {
			return err
		}
	}

	if r.boot.Comm == nil {
		return &DistributionError{Machine: r.boot.Name, Path: clusterconfig.GenconfDir(r.cfg.Installer.WorkDir),
			Err: fmt.Errorf("machine has no communicator")}
	}

	workDir := r.cfg.Installer.WorkDir
	uploads := []upload{
		{clusterconfig.GenconfPath(workDir, clusterconfig.ConfigFile), r.rendered, 0o644},
		{clusterconfig.GenconfPath(workDir, clusterconfig.IPDetectFile), r.ipDetect, 0o755},
	}
	if len(r.credential.PrivateKey) > 0 {
		uploads = append(uploads, upload{
			clusterconfig.GenconfPath(workDir, clusterconfig.SSHKeyFile), r.credential.PrivateKey, 0o600,
		})
	}

	for _, u := range uploads {
		if err := r.boot.Comm.Upload(ctx, u.path, u.content, u.mode); err != nil {
			return &DistributionError{Machine: r.boot.Name, Path: u.path, Err: err}
		}
		r.observer.Event(Event{Type: EventTaskCompleted, Phase: "distribute", Resource: r.boot.Name,
			Message: fmt.Sprintf("uploaded %s", u.path)})
	}
	return nil
}

func (r *run) authorizeMachine(ctx context.Context, m *topology.Machine) error {
	script, err := authorizeScript(r.cfg.SSH.User, r.credential.AuthorizedKey)
	if err != nil {
		return err
	}
	status, tail, err := r.exec(ctx, m, PhaseAuthorize, script)
	if err != nil {
		return err
	}
	if status != 0 {
		return fmt.Errorf("authorizing key exited with status %d: %s", status, tail)
	}
	return nil
}
