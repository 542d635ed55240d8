package prerequisites

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest // replaces package-level lookPath
func TestCheck_ReportsMissingRequiredTools(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if name == "present" {
			return "/usr/bin/present", nil
		}
		return "", exec.ErrNotFound
	}

	tools := append(Required([]string{"present", "absent", " "}), OptionalTools()...)
	results := Check(tools)

	require.Len(t, results.Results, 3)
	assert.True(t, results.Results[0].Found)
	assert.Equal(t, "/usr/bin/present", results.Results[0].Path)
	assert.True(t, results.HasErrors())

	var merr *MissingCapabilityError
	require.True(t, errors.As(results.Err(), &merr))
	assert.Equal(t, []string{"absent"}, merr.Missing)
	assert.Equal(t, "missing required capabilities: absent", merr.Error())
}

//nolint:paralleltest // replaces package-level lookPath
func TestCheck_OptionalMissingIsNotAnError(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	results := Check(OptionalTools())
	assert.Len(t, results.Missing, 1)
	assert.NoError(t, results.Err())
	assert.False(t, results.HasErrors())
}

func TestRequired(t *testing.T) {
	t.Parallel()
	tools := Required([]string{"vagrant", ""})
	require.Len(t, tools, 1)
	assert.True(t, tools[0].Required)
	assert.Equal(t, "vagrant", tools[0].Name)
}
