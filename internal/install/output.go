package install

import (
	"bytes"
	"strings"
	"sync"
)

// lineWriter forwards complete lines of remote output as EventOutput
// events. It keeps a bounded tail for error reports.
type lineWriter struct {
	observer Observer
	phase    string
	machine  string
	stream   string

	mu   sync.Mutex
	buf  []byte
	tail []string
}

const tailLines = 20

func newLineWriter(observer Observer, phase, machine, stream string) *lineWriter {
	return &lineWriter{observer: observer, phase: phase, machine: machine, stream: stream}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// Tail returns the last lines written.
func (w *lineWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	w.tail = append(w.tail, line)
	if len(w.tail) > tailLines {
		w.tail = w.tail[len(w.tail)-tailLines:]
	}
	w.observer.Event(Event{
		Type:     EventOutput,
		Phase:    w.phase,
		Resource: w.machine,
		Message:  line,
		Fields:   map[string]string{"stream": w.stream},
	})
}
