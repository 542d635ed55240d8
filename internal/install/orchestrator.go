package install

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/imamik/clusterup/internal/clusterconfig"
	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/topology"
	"github.com/imamik/clusterup/internal/util/async"
	"github.com/imamik/clusterup/internal/util/netutil"
)

// ProbeFunc issues one readiness request against url.
type ProbeFunc func(ctx context.Context, url string) (bool, error)

// ArtifactArchive stores rendered artifacts by name.
type ArtifactArchive interface {
	Put(ctx context.Context, name string, body []byte) error
}

// Credential is the key pair the boot machine uses to reach other nodes.
type Credential struct {
	PrivateKey []byte
	// AuthorizedKey, when set, is appended to authorized_keys on every
	// machine before distribution.
	AuthorizedKey []byte
}

// Deps are the collaborators of an Orchestrator. Zero values get defaults.
type Deps struct {
	Observer Observer
	Probe    ProbeFunc
	Archive  ArtifactArchive
	Metrics  *Metrics
}

// Options configure a run.
type Options struct {
	Config     *config.Config
	Timeouts   *config.Timeouts
	Credential Credential
	// RunID tags log lines and archive keys. Generated if empty.
	RunID string
}

// Orchestrator sequences one install run.
type Orchestrator struct {
	cfg        *config.Config
	timeouts   *config.Timeouts
	credential Credential
	runID      string

	observer Observer
	probe    ProbeFunc
	archive  ArtifactArchive
	metrics  *Metrics
}

// New creates an orchestrator.
func New(deps Deps, opts Options) *Orchestrator {
	o := &Orchestrator{
		cfg:        opts.Config,
		timeouts:   opts.Timeouts,
		credential: opts.Credential,
		runID:      opts.RunID,
		observer:   deps.Observer,
		probe:      deps.Probe,
		archive:    deps.Archive,
		metrics:    deps.Metrics,
	}
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	if o.timeouts == nil {
		o.timeouts = config.LoadTimeouts()
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	if o.observer == nil {
		o.observer = NewConsoleObserver()
	}
	if o.probe == nil {
		o.probe = netutil.NewHTTPProbe(0).Ready
	}
	return o
}

// RunID returns the ID the run is tagged with.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// run holds the state of one Run call.
type run struct {
	*Orchestrator
	topo     *topology.Topology
	observer Observer
	report   *Report

	boot        *topology.Machine
	bootAddress string
	cluster     *clusterconfig.ClusterConfig
	rendered    []byte
	ipDetect    []byte
}

type step struct {
	state State
	name  string
	fn    func(ctx context.Context) error
}

// Run installs the cluster on topo. The returned report is never nil and
// records the last state reached, also on error. An invalid topology fails
// before anything is dispatched.
func (o *Orchestrator) Run(ctx context.Context, topo *topology.Topology) (*Report, error) {
	report := &Report{RunID: o.runID, Method: o.cfg.InstallMethod}
	start := time.Now()

	err := o.execute(ctx, topo, report)
	o.metrics.recordRun(o.cfg.InstallMethod, err)
	if err != nil {
		return report, err
	}
	o.observer.Printf("Install completed in %v", time.Since(start).Round(time.Millisecond))
	return report, nil
}

func (o *Orchestrator) execute(ctx context.Context, topo *topology.Topology, report *Report) error {
	if err := topo.Validate(); err != nil {
		return err
	}

	r := &run{
		Orchestrator: o,
		topo:         topo,
		report:       report,
		observer: o.observer.WithFields(map[string]string{
			"run":    o.runID,
			"method": string(o.cfg.InstallMethod),
		}),
	}

	steps := []step{
		{StateConfigGenerated, "generate", r.generate},
		{StateDistributed, "distribute", r.distribute},
	}
	switch o.cfg.InstallMethod {
	case config.MethodWeb:
		steps = append(steps, step{StateDeployed, "deploy", r.deployWeb})
	case config.MethodSSHPush:
		steps = append(steps,
			step{StateDeployed, "deploy", r.deployPush},
			step{StateComplete, "complete", r.complete},
		)
	case config.MethodSSHPull:
		steps = append(steps,
			step{StateDeployed, "deploy", r.deployPull},
			step{StatePostflightVerified, "postflight", r.postflight},
			step{StateComplete, "complete", r.complete},
		)
	default:
		return fmt.Errorf("unknown install method %q", o.cfg.InstallMethod)
	}

	r.observer.Printf("Starting %s install of %d machines with %d steps...",
		o.cfg.InstallMethod, len(topo.Machines()), len(steps))
	for i, s := range steps {
		if err := r.runStep(ctx, fmt.Sprintf("%s (%d/%d)", s.name, i+1, len(steps)), s); err != nil {
			return fmt.Errorf("%s step failed: %w", s.name, err)
		}
		report.State = s.state
	}
	return nil
}

func (r *run) runStep(ctx context.Context, label string, s step) error {
	start := time.Now()
	logPhaseStart(r.observer, label, "starting")

	err := s.fn(ctx)
	r.metrics.recordPhase(s.name, time.Since(start), err)
	if err != nil {
		logPhaseFailed(r.observer, label, err)
		return err
	}
	logPhaseComplete(r.observer, label, time.Since(start))
	return nil
}

// runTasks executes one executor phase and records its accounting.
func (r *run) runTasks(ctx context.Context, phase string, tasks []async.Task) error {
	start := time.Now()
	workers := async.Workers(r.cfg.MaxInstallThreads, len(tasks))
	logPhaseStart(r.observer, phase, fmt.Sprintf("dispatching %d tasks with %d workers", len(tasks), workers))

	res := async.Run(ctx, tasks, r.cfg.MaxInstallThreads, r.runTask)
	r.report.Phases = append(r.report.Phases, PhaseReport{
		Name:       phase,
		Dispatched: res.Dispatched,
		Succeeded:  res.Succeeded,
		Failed:     len(res.Failures),
		Duration:   time.Since(start),
	})

	err := res.Err(phase)
	r.metrics.recordPhase(phase, time.Since(start), err)
	if err != nil {
		logPhaseFailed(r.observer, phase, err)
		return err
	}
	logPhaseComplete(r.observer, phase, time.Since(start))
	return nil
}

// runTask is the async.Runner of every executor phase.
func (r *run) runTask(ctx context.Context, task async.Task) error {
	m, ok := r.topo.Get(task.Machine)
	if !ok {
		return fmt.Errorf("unknown machine %q", task.Machine)
	}
	if m.Comm == nil {
		return fmt.Errorf("machine %s has no communicator", m.Name)
	}

	r.observer.Event(Event{Type: EventTaskStarted, Phase: task.Kind, Resource: m.Name, Message: task.String()})

	var err error
	switch task.Kind {
	case KindAuthorize:
		err = r.authorizeMachine(ctx, m)
	case KindInstall:
		err = r.installMachine(ctx, m, task.Role)
	case KindPostflight:
		err = r.verifyMachine(ctx, m)
	default:
		err = fmt.Errorf("unknown task kind %q", task.Kind)
	}

	r.metrics.recordTask(task.Kind, string(m.Role), err)
	if err != nil {
		r.observer.Event(Event{Type: EventTaskFailed, Phase: task.Kind, Resource: m.Name, Message: err.Error()})
		return err
	}
	r.observer.Event(Event{Type: EventTaskCompleted, Phase: task.Kind, Resource: m.Name, Message: task.String()})
	return nil
}

// exec runs command on m, streaming output to the observer. It returns the
// exit status and the tail of the output.
func (r *run) exec(ctx context.Context, m *topology.Machine, phase, command string) (int, string, error) {
	stdout := newLineWriter(r.observer, phase, m.Name, "stdout")
	stderr := newLineWriter(r.observer, phase, m.Name, "stderr")
	status, err := m.Comm.Run(ctx, command, stdout, stderr)
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		return status, "", fmt.Errorf("failed to run command on %s: %w", m.Name, err)
	}
	tail := stderr.Tail()
	if tail == "" {
		tail = stdout.Tail()
	}
	return status, tail, nil
}

// bootCommand runs one sequential step on the boot machine. A non-zero exit
// is an *InstallError.
func (r *run) bootCommand(ctx context.Context, step, command string) error {
	status, tail, err := r.exec(ctx, r.boot, step, command)
	if err != nil {
		return err
	}
	if status != 0 {
		return &InstallError{Machine: r.boot.Name, Step: step, Status: status, Output: tail}
	}
	return nil
}

func (r *run) complete(_ context.Context) error {
	r.report.WebAddress = "http://" + r.cluster.FirstMaster()
	r.observer.Printf("Cluster is available at %s", r.report.WebAddress)
	return nil
}

// machineTasks builds one task per machine with the given kind.
func machineTasks(kind, role string, machines []*topology.Machine) []async.Task {
	tasks := make([]async.Task, len(machines))
	for i, m := range machines {
		tasks[i] = async.Task{Machine: m.Name, Role: role, Kind: kind}
	}
	return tasks
}
