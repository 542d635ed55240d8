package install

import (
	"time"

	"github.com/imamik/clusterup/internal/config"
)

// State is a step of the install state machine.
type State string

// States in the order a run reaches them.
const (
	StateNone               State = ""
	StateConfigGenerated    State = "config_generated"
	StateDistributed        State = "distributed"
	StateDeployed           State = "deployed"
	StatePostflightVerified State = "postflight_verified"
	StateComplete           State = "complete"
)

// Task kinds handled by the orchestrator's runner.
const (
	KindAuthorize  = "authorize"
	KindInstall    = "install"
	KindPostflight = "postflight"
)

// Executor phase names.
const (
	PhaseAuthorize  = "authorize"
	PhaseMasters    = "masters"
	PhaseAgents     = "agents"
	PhasePostflight = "postflight"
)

// Role arguments handed to the node install script.
const (
	roleArgMaster      = "master"
	roleArgSlave       = "slave"
	roleArgSlavePublic = "slave_public"
)

// PhaseReport is the task accounting of one executor phase.
type PhaseReport struct {
	Name       string
	Dispatched int
	Succeeded  int
	Failed     int
	Duration   time.Duration
}

// Report describes how far a run got.
type Report struct {
	RunID  string
	Method config.InstallMethod
	// State is the last state reached.
	State State

	// WebAddress is the cluster UI, set on Complete.
	WebAddress string
	// InstallerAddress is the web installer endpoint, set for web installs.
	InstallerAddress string

	// Phases lists executor phases in the order they ran.
	Phases []PhaseReport
}

// Phase returns the report of the named phase, or nil if it never ran.
func (r *Report) Phase(name string) *PhaseReport {
	for i := range r.Phases {
		if r.Phases[i].Name == name {
			return &r.Phases[i]
		}
	}
	return nil
}

// Dispatched returns the number of tasks dispatched in the named phase.
func (r *Report) Dispatched(name string) int {
	if p := r.Phase(name); p != nil {
		return p.Dispatched
	}
	return 0
}
