package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/clusterup/internal/install"
)

// RunFunc runs an install, reporting progress to observer.
type RunFunc func(observer install.Observer) (*install.Report, error)

// programOptions are replaced in tests to run without a terminal.
var programOptions = []tea.ProgramOption{tea.WithAltScreen()}

// RunInstall shows the dashboard while run executes in the background.
//
// Quitting the dashboard only hides it: remote commands cannot be
// cancelled mid-phase, so RunInstall always waits for run to return and
// returns its result.
func RunInstall(m Model, run RunFunc) (*install.Report, error) {
	p := tea.NewProgram(m, programOptions...)

	type result struct {
		report *install.Report
		err    error
	}
	done := make(chan result, 1)

	go func() {
		report, err := run(NewObserver(p.Send))
		done <- result{report: report, err: err}
		p.Send(DoneMsg{Report: report, Err: err})
	}()

	_, tuiErr := p.Run()
	res := <-done
	if tuiErr != nil && res.err == nil {
		return res.report, fmt.Errorf("TUI error: %w", tuiErr)
	}
	return res.report, res.err
}
