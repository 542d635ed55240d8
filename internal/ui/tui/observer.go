package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/clusterup/internal/install"
)

// Observer forwards orchestrator progress to a running dashboard.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver returns an Observer that delivers messages with send,
// typically (*tea.Program).Send.
func NewObserver(send func(tea.Msg)) *Observer {
	return &Observer{send: send}
}

// Printf implements install.Observer.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements install.Observer.
func (o *Observer) Event(event install.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	o.send(EventMsg{Event: event})
}

// WithFields implements install.Observer. Context fields are not shown on
// the dashboard.
func (o *Observer) WithFields(_ map[string]string) install.Observer {
	return o
}
