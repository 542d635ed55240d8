package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/topology"
)

type fakeUpload struct {
	Content []byte
	Mode    os.FileMode
}

// fakeComm records every command and upload. respond decides the exit
// status and output of a command; nil means success with no output.
type fakeComm struct {
	mu       sync.Mutex
	commands []string
	uploads  map[string]fakeUpload
	order    []string

	respond   func(cmd string) (int, string)
	runErr    error
	uploadErr func(path string) error
}

func newFakeComm() *fakeComm {
	return &fakeComm{uploads: make(map[string]fakeUpload)}
}

func (c *fakeComm) Run(_ context.Context, command string, stdout, _ io.Writer) (int, error) {
	c.mu.Lock()
	c.commands = append(c.commands, command)
	c.order = append(c.order, "run:"+command)
	respond, runErr := c.respond, c.runErr
	c.mu.Unlock()

	if runErr != nil {
		return -1, runErr
	}
	if respond == nil {
		return 0, nil
	}
	status, out := respond(command)
	if out != "" && stdout != nil {
		_, _ = io.WriteString(stdout, out)
	}
	return status, nil
}

func (c *fakeComm) Upload(_ context.Context, path string, content []byte, mode os.FileMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uploadErr != nil {
		if err := c.uploadErr(path); err != nil {
			return err
		}
	}
	c.uploads[path] = fakeUpload{Content: append([]byte(nil), content...), Mode: mode}
	c.order = append(c.order, "upload:"+path)
	return nil
}

func (c *fakeComm) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commands...)
}

func (c *fakeComm) uploaded(path string) (fakeUpload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.uploads[path]
	return u, ok
}

// ran reports whether any command on c contains substr.
func (c *fakeComm) ran(substr string) bool {
	for _, cmd := range c.Commands() {
		if strings.Contains(cmd, substr) {
			return true
		}
	}
	return false
}

// mockObserver records everything it receives.
type mockObserver struct {
	mu     sync.Mutex
	lines  []string
	events []Event
}

func (o *mockObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *mockObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *mockObserver) WithFields(_ map[string]string) Observer {
	return o
}

func (o *mockObserver) eventsOf(t EventType) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// cluster is a test topology with a fake communicator per machine.
type cluster struct {
	topo  *topology.Topology
	comms map[string]*fakeComm
}

func (c *cluster) comm(name string) *fakeComm { return c.comms[name] }

// newCluster builds boot, m1, m2, a1 (private) and p1 (public). Every
// machine reports the loopback address publicly.
func newCluster(t *testing.T) *cluster {
	t.Helper()
	specs := []struct {
		name string
		role topology.Role
		ip   string
	}{
		{"boot", topology.RoleBoot, "192.168.65.50"},
		{"m1", topology.RoleMaster, "192.168.65.90"},
		{"m2", topology.RoleMaster, "192.168.65.95"},
		{"p1", topology.RoleAgentPublic, "192.168.65.60"},
		{"a1", topology.RoleAgentPrivate, "192.168.65.111"},
	}
	c := &cluster{comms: make(map[string]*fakeComm)}
	machines := make([]*topology.Machine, 0, len(specs))
	for _, s := range specs {
		comm := newFakeComm()
		c.comms[s.name] = comm
		machines = append(machines, &topology.Machine{
			Name:          s.name,
			Role:          s.role,
			PublicAddress: "127.0.0.1",
			Networks:      []topology.Network{{Kind: topology.NetworkPrivate, IP: s.ip}},
			Comm:          comm,
		})
	}
	topo, err := topology.New(machines...)
	require.NoError(t, err)
	c.topo = topo
	return c
}

// failOn makes commands containing substr exit with status on machine.
func (c *cluster) failOn(machine, substr string, status int) {
	comm := c.comm(machine)
	comm.mu.Lock()
	defer comm.mu.Unlock()
	comm.respond = func(cmd string) (int, string) {
		if strings.Contains(cmd, substr) {
			return status, "boom\n"
		}
		return 0, ""
	}
}

func testOrchestrator(method config.InstallMethod, deps Deps) (*Orchestrator, *mockObserver) {
	cfg := config.Default()
	cfg.InstallMethod = method
	cfg.MaxInstallThreads = 2

	obs := &mockObserver{}
	if deps.Observer == nil {
		deps.Observer = obs
	}
	if deps.Probe == nil {
		deps.Probe = func(context.Context, string) (bool, error) { return true, nil }
	}
	o := New(deps, Options{
		Config:   cfg,
		Timeouts: &config.Timeouts{WebInstaller: 200 * time.Millisecond, PollInterval: 10 * time.Millisecond},
		RunID:    "run-1",
	})
	return o, obs
}
