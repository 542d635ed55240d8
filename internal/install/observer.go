package install

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Observer receives progress output of a run.
type Observer interface {
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event is a structured progress event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string // Machine name if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType is the kind of an Event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventTaskStarted indicates a per-machine task was picked up by a worker.
	EventTaskStarted EventType = "task.started"
	// EventTaskCompleted indicates a task finished successfully.
	EventTaskCompleted EventType = "task.completed"
	// EventTaskFailed indicates a task failed.
	EventTaskFailed EventType = "task.failed"

	// EventOutput carries one line of remote command output.
	EventOutput EventType = "output"
)

// ConsoleObserver implements Observer using standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{contextFields: make(map[string]string)}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(mergeFields(event, o.contextFields)))
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{contextFields: withFields(o.contextFields, fields)}
}

func withFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeFields(event Event, ctx map[string]string) Event {
	if len(ctx) == 0 {
		return event
	}
	merged := withFields(ctx, event.Fields)
	event.Fields = merged
	return event
}

// formatEvent formats an event for console output. Fields are sorted so
// lines stay comparable between runs.
func formatEvent(event Event) string {
	var parts []string

	if event.Type != EventOutput {
		parts = append(parts, string(event.Type))
	}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("machine=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, len(keys))
		for i, k := range keys {
			fieldParts[i] = fmt.Sprintf("%s=%s", k, event.Fields[k])
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}
	return strings.Join(parts, " ")
}

func logPhaseStart(observer Observer, phase, message string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: message})
}

func logPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

func logPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}
