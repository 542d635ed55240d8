// Package prerequisites checks that host capabilities required by an install
// run are present before any machine is touched.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host executable that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// OptionalTools returns tools that help with debugging a run but are never
// required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "ssh",
			Description: "Useful for inspecting machines after a failed run",
		},
	}
}

// Required turns configured tool names into required tools.
func Required(names []string) []Tool {
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tools = append(tools, Tool{Name: name, Required: true, Description: "required by configuration"})
	}
	return tools
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// MissingCapabilityError reports required host capabilities that are absent.
type MissingCapabilityError struct {
	Missing []string
}

// Error implements the error interface.
func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("missing required capabilities: %s", strings.Join(e.Missing, ", "))
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	return r.Err() != nil
}

// Err returns a *MissingCapabilityError if any required tool is missing.
func (r *CheckResults) Err() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingCapabilityError{Missing: missing}
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}
		if path, err := lookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}
		results.Results = append(results.Results, result)
	}
	return results
}
