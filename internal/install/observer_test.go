package install

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEvent(t *testing.T) {
	t.Parallel()
	got := formatEvent(Event{
		Type:     EventTaskFailed,
		Phase:    "install",
		Resource: "m1",
		Message:  "exit status 1",
		Fields:   map[string]string{"run": "r1", "method": "ssh_pull"},
	})
	assert.Equal(t, "task.failed [install] machine=m1 exit status 1 (method=ssh_pull, run=r1)", got)

	assert.Equal(t, "[install] machine=m1 Downloading", formatEvent(Event{
		Type: EventOutput, Phase: "install", Resource: "m1", Message: "Downloading",
	}))
}

func TestConsoleObserver_WithFields(t *testing.T) {
	// Not parallel: redirects the standard logger.
	var buf bytes.Buffer
	prevOutput, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
	})

	base := NewConsoleObserver()
	child := base.WithFields(map[string]string{"run": "r1"})
	child.Event(Event{Type: EventPhaseStarted, Phase: "masters", Message: "starting"})
	base.Event(Event{Type: EventPhaseStarted, Phase: "agents", Message: "starting"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "phase.started [masters] starting (run=r1)", lines[0])
	assert.Equal(t, "phase.started [agents] starting", lines[1], "parent fields are unchanged")
}

func TestLineWriter(t *testing.T) {
	t.Parallel()
	obs := &mockObserver{}
	w := newLineWriter(obs, "install", "m1", "stdout")

	_, _ = w.Write([]byte("first\nsec"))
	_, _ = w.Write([]byte("ond\r\nthird"))
	w.Flush()

	events := obs.eventsOf(EventOutput)
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Message)
	assert.Equal(t, "second", events[1].Message)
	assert.Equal(t, "third", events[2].Message)
	assert.Equal(t, "m1", events[0].Resource)
	assert.Equal(t, "stdout", events[0].Fields["stream"])
	assert.Equal(t, "first\nsecond\nthird", w.Tail())
}

func TestLineWriter_TailIsBounded(t *testing.T) {
	t.Parallel()
	w := newLineWriter(&mockObserver{}, "install", "m1", "stderr")
	for i := 0; i < tailLines+5; i++ {
		_, _ = w.Write([]byte("line\n"))
	}
	assert.Len(t, strings.Split(w.Tail(), "\n"), tailLines)
}
