package install

import (
	"fmt"
	"strings"
)

// DistributionError reports a file that could not be delivered.
type DistributionError struct {
	Machine string
	Path    string
	Err     error
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("failed to distribute %s to %s: %v", e.Path, e.Machine, e.Err)
}

func (e *DistributionError) Unwrap() error {
	return e.Err
}

// InstallError reports a boot machine command that exited non-zero.
type InstallError struct {
	Machine string
	Step    string
	Status  int
	// Output is the tail of the command's output.
	Output string
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("%s on %s exited with status %d", e.Step, e.Machine, e.Status)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ":\n" + out
	}
	return msg
}

// ReadinessTimeoutError reports an endpoint that never became ready. Status
// holds diagnostics captured after the deadline.
type ReadinessTimeoutError struct {
	Address string
	Status  string
	Err     error
}

func (e *ReadinessTimeoutError) Error() string {
	msg := fmt.Sprintf("%s did not become ready: %v", e.Address, e.Err)
	if s := strings.TrimSpace(e.Status); s != "" {
		msg += "\nservice status:\n" + s
	}
	return msg
}

func (e *ReadinessTimeoutError) Unwrap() error {
	return e.Err
}
