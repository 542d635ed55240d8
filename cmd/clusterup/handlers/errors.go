package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/imamik/clusterup/internal/topology"
	"github.com/imamik/clusterup/internal/util/prerequisites"
)

// Exit codes.
const (
	ExitFailure    = 1
	ExitValidation = 2
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var verr *topology.ValidationError
	if errors.As(err, &verr) {
		return ExitValidation
	}
	return ExitFailure
}

// ReportError writes err to w. Topology validation errors are written one
// missing category per line.
func ReportError(w io.Writer, err error) {
	var verr *topology.ValidationError
	if errors.As(err, &verr) {
		for _, line := range verr.Lines() {
			fmt.Fprintln(w, errorStyle.Render("error:")+" "+line)
		}
		return
	}
	var merr *prerequisites.MissingCapabilityError
	if errors.As(err, &merr) {
		fmt.Fprintln(w, errorStyle.Render("error:")+" "+merr.Error())
		fmt.Fprintln(w, dimStyle.Render("  install the missing tools or remove them from required_tools"))
		return
	}
	fmt.Fprintln(w, errorStyle.Render("error:")+" "+err.Error())
}
