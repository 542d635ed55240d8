// Package tui provides a Bubble Tea dashboard for install runs.
package tui

import "github.com/imamik/clusterup/internal/install"

// EventMsg carries one orchestrator event.
type EventMsg struct {
	Event install.Event
}

// LogMsg carries a free-form progress line.
type LogMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// DoneMsg signals that the run returned.
type DoneMsg struct {
	Report *install.Report
	Err    error
}
