package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/install"
	"github.com/imamik/clusterup/internal/platform/s3"
	"github.com/imamik/clusterup/internal/platform/ssh"
	"github.com/imamik/clusterup/internal/topology"
	"github.com/imamik/clusterup/internal/ui/tui"
	"github.com/imamik/clusterup/internal/util/keygen"
	"github.com/imamik/clusterup/internal/util/prerequisites"
)

// InstallOptions holds the inputs of the install command.
type InstallOptions struct {
	TopologyPath string
	ConfigPath   string
	MetricsFile  string
	// NoTUI prints log lines even on an interactive terminal.
	NoTUI bool
}

// orchestrator matches install.Orchestrator.
type orchestrator interface {
	Run(ctx context.Context, topo *topology.Topology) (*install.Report, error)
	RunID() string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads installer settings.
	loadConfigFile = config.LoadFile

	// loadTopologyFile loads the machine topology.
	loadTopologyFile = topology.LoadFile

	// loadTimeouts reads timeouts from the environment.
	loadTimeouts = config.LoadTimeouts

	// checkPrerequisites verifies required host tools.
	checkPrerequisites = func(cfg *config.Config) error {
		return prerequisites.Check(prerequisites.Required(cfg.RequiredTools)).Err()
	}

	// readFile reads the login key.
	readFile = os.ReadFile

	// loadOrGenerateKey loads the cluster credential or generates one.
	loadOrGenerateKey = keygen.LoadOrGenerate

	// newCommunicator creates the remote-command channel of a machine.
	newCommunicator = func(cfg *ssh.Config) (topology.Communicator, error) {
		client, err := ssh.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// newArchive creates the artifact archive.
	newArchive = func(ctx context.Context, a *config.ArchiveConfig) (install.ArtifactArchive, error) {
		client, err := s3.NewClient(ctx, a.Endpoint, a.Region, a.AccessKey, a.SecretKey)
		if err != nil {
			return nil, err
		}
		return s3.NewArchive(client, a.Bucket, a.Prefix), nil
	}

	// newOrchestrator creates the install orchestrator.
	newOrchestrator = func(deps install.Deps, opts install.Options) orchestrator {
		return install.New(deps, opts)
	}

	// isInteractive reports whether the live dashboard can be shown.
	isInteractive = isInteractiveTTY

	// runDashboard runs an install behind the live dashboard.
	runDashboard = tui.RunInstall

	// stdout receives reports.
	stdout io.Writer = os.Stdout
)

// Install runs a full install.
//
// Everything that can fail without touching a machine is checked first:
//  1. Loads installer settings and checks required host tools
//  2. Loads and validates the topology
//  3. Loads the login key and the cluster credential
//  4. Connects a communicator per machine and runs the orchestrator
//
// The run summary is printed whether or not the install succeeded, and the
// metrics file is written in both cases.
func Install(ctx context.Context, opts InstallOptions) error {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := checkPrerequisites(cfg); err != nil {
		return err
	}

	specs, _, err := loadTopology(opts.TopologyPath)
	if err != nil {
		return err
	}

	if cfg.SSH.KeyPath == "" {
		return fmt.Errorf("ssh.key_path is required to log in to the machines")
	}
	loginKey, err := readFile(cfg.SSH.KeyPath)
	if err != nil {
		return fmt.Errorf("failed to read ssh key: %w", err)
	}
	credential, err := clusterCredential(cfg.SSH.ClusterKeyPath)
	if err != nil {
		return err
	}

	timeouts := loadTimeouts()
	topo, err := buildTopology(specs, func(spec topology.MachineSpec) (topology.Communicator, error) {
		port := spec.SSHPort
		if port == 0 {
			port = cfg.SSH.Port
		}
		return newCommunicator(&ssh.Config{
			Host:       spec.Host(),
			Port:       port,
			User:       cfg.SSH.User,
			PrivateKey: loginKey,
			MaxRetries: timeouts.SSHMaxRetries,
			RetryDelay: timeouts.SSHRetryDelay,
		})
	})
	if err != nil {
		return err
	}

	deps := install.Deps{Observer: install.NewConsoleObserver(), Metrics: install.NewMetrics()}
	if cfg.Archive != nil {
		deps.Archive, err = newArchive(ctx, cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to set up artifact archive: %w", err)
		}
	}
	orchOpts := install.Options{
		Config:     cfg,
		Timeouts:   timeouts,
		Credential: credential,
	}

	var report *install.Report
	var runErr error
	if !opts.NoTUI && isInteractive() {
		report, runErr = runDashboard(dashboardModel(cfg, specs), func(observer install.Observer) (*install.Report, error) {
			deps.Observer = observer
			return newOrchestrator(deps, orchOpts).Run(ctx, topo)
		})
	} else {
		orch := newOrchestrator(deps, orchOpts)
		log.Printf("Installing cluster %s with %s (run %s)", cfg.ClusterName, cfg.InstallMethod, orch.RunID())
		report, runErr = orch.Run(ctx, topo)
	}

	if opts.MetricsFile != "" {
		if err := deps.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	if report != nil {
		printReport(stdout, report, runErr)
	}
	return runErr
}

// clusterCredential loads the key at path, or generates one that must be
// authorized on every machine.
func clusterCredential(path string) (install.Credential, error) {
	kp, err := loadOrGenerateKey(path)
	if err != nil {
		return install.Credential{}, fmt.Errorf("failed to prepare cluster credential: %w", err)
	}
	cred := install.Credential{PrivateKey: kp.PrivateKey}
	if kp.Generated {
		cred.AuthorizedKey = kp.PublicKey
	}
	return cred, nil
}

// dashboardModel lists every machine of the topology in file order.
func dashboardModel(cfg *config.Config, specs []topology.MachineSpec) tui.Model {
	rows := make([]tui.MachineRow, len(specs))
	for i, spec := range specs {
		rows[i] = tui.MachineRow{Name: spec.Name, Role: string(spec.Type)}
	}
	return tui.NewInstallModel(cfg.ClusterName, cfg.InstallMethod, rows)
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
