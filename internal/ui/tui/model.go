package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/clusterup/internal/config"
	"github.com/imamik/clusterup/internal/install"
)

// maxOutputLines bounds the remote output shown below the machine table.
const maxOutputLines = 8

// Status is the display state of a phase or machine row.
type Status int

// Row states.
const (
	StatusPending Status = iota
	StatusActive
	StatusDone
	StatusFailed
)

// PhaseRow is one step or executor phase, in the order it started.
type PhaseRow struct {
	Name     string
	Status   Status
	Message  string
	Started  time.Time
	Duration time.Duration
}

// MachineRow is the latest task state of one machine.
type MachineRow struct {
	Name   string
	Role   string
	Task   string
	Status Status
	Err    string
}

// Model is the Bubble Tea model for the install dashboard.
type Model struct {
	ClusterName string
	Method      config.InstallMethod

	Phases   []PhaseRow
	Machines []MachineRow
	Output   []string

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width  int
	Height int

	Report *install.Report
	Err    error
	Done   bool
}

// NewInstallModel creates a dashboard for the given machines, keyed by name
// with their role.
func NewInstallModel(clusterName string, method config.InstallMethod, machines []MachineRow) Model {
	rows := make([]MachineRow, len(machines))
	copy(rows, machines)
	return Model{
		ClusterName: clusterName,
		Method:      method,
		Machines:    rows,
		StartTime:   time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case EventMsg:
		m.applyEvent(msg.Event)

	case LogMsg:
		m.appendOutput(msg.Line)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		m.Report = msg.Report
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(e install.Event) {
	switch e.Type {
	case install.EventPhaseStarted:
		m.startPhase(e.Phase, e.Message, e.Timestamp)
	case install.EventPhaseCompleted:
		m.finishPhase(e.Phase, StatusDone, e.Message, e.Timestamp)
	case install.EventPhaseFailed:
		m.finishPhase(e.Phase, StatusFailed, e.Message, e.Timestamp)
	case install.EventTaskStarted:
		m.updateMachine(e.Resource, e.Message, StatusActive, "")
	case install.EventTaskCompleted:
		m.updateMachine(e.Resource, e.Message, StatusDone, "")
	case install.EventTaskFailed:
		m.updateMachine(e.Resource, "", StatusFailed, e.Message)
	case install.EventOutput:
		line := e.Message
		if e.Resource != "" {
			line = e.Resource + ": " + line
		}
		m.appendOutput(line)
	}
}

func (m *Model) startPhase(name, message string, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	if i := m.phaseIndex(name); i >= 0 {
		m.Phases[i].Status = StatusActive
		m.Phases[i].Message = message
		m.Phases[i].Started = at
		return
	}
	m.Phases = append(m.Phases, PhaseRow{Name: name, Status: StatusActive, Message: message, Started: at})
}

func (m *Model) finishPhase(name string, status Status, message string, at time.Time) {
	i := m.phaseIndex(name)
	if i < 0 {
		m.Phases = append(m.Phases, PhaseRow{Name: name})
		i = len(m.Phases) - 1
	}
	if at.IsZero() {
		at = time.Now()
	}
	row := &m.Phases[i]
	row.Status = status
	row.Message = message
	if !row.Started.IsZero() {
		row.Duration = at.Sub(row.Started)
	}
}

func (m *Model) phaseIndex(name string) int {
	for i, p := range m.Phases {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// updateMachine records the latest task state of a machine. Unknown
// machines, such as the archive pseudo-target, get a row of their own.
func (m *Model) updateMachine(name, task string, status Status, errMsg string) {
	if name == "" {
		return
	}
	idx := -1
	for i, row := range m.Machines {
		if row.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.Machines = append(m.Machines, MachineRow{Name: name})
		idx = len(m.Machines) - 1
	}
	row := &m.Machines[idx]
	row.Status = status
	if task != "" {
		row.Task = task
	}
	row.Err = errMsg
}

func (m *Model) appendOutput(line string) {
	m.Output = append(m.Output, line)
	if len(m.Output) > maxOutputLines {
		m.Output = m.Output[len(m.Output)-maxOutputLines:]
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
