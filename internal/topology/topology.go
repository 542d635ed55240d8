package topology

import (
	"fmt"
	"strings"
)

// Topology is the ordered machine inventory of one run.
// Iteration order is the order machines were added.
type Topology struct {
	machines []*Machine
	byName   map[string]*Machine
}

// New builds a topology from machines in order. Names must be unique.
func New(machines ...*Machine) (*Topology, error) {
	t := &Topology{byName: make(map[string]*Machine, len(machines))}
	for _, m := range machines {
		if m == nil {
			return nil, fmt.Errorf("machine cannot be nil")
		}
		if m.Name == "" {
			return nil, fmt.Errorf("machine name cannot be empty")
		}
		if !m.Role.Valid() {
			return nil, fmt.Errorf("machine %q has unknown type %q", m.Name, m.Role)
		}
		if _, exists := t.byName[m.Name]; exists {
			return nil, fmt.Errorf("duplicate machine name %q", m.Name)
		}
		t.machines = append(t.machines, m)
		t.byName[m.Name] = m
	}
	return t, nil
}

// Machines returns all machines in topology order.
func (t *Topology) Machines() []*Machine {
	out := make([]*Machine, len(t.machines))
	copy(out, t.machines)
	return out
}

// Get returns the machine with the given name.
func (t *Topology) Get(name string) (*Machine, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// ByRole returns the machines of the given roles. All machines of the first
// role come before those of the second, and so on; within a role the
// topology order is kept.
func (t *Topology) ByRole(roles ...Role) []*Machine {
	var out []*Machine
	for _, role := range roles {
		for _, m := range t.machines {
			if m.Role == role {
				out = append(out, m)
			}
		}
	}
	return out
}

// Boot returns the first boot machine, or nil.
func (t *Topology) Boot() *Machine {
	boots := t.ByRole(RoleBoot)
	if len(boots) == 0 {
		return nil
	}
	return boots[0]
}

// MissingCategory is one required machine category absent from a topology.
type MissingCategory struct {
	Category string
	Roles    []Role
}

// Message returns the user-facing line for this category.
func (c MissingCategory) Message() string {
	names := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("topology must contain at least one %s machine (type: %s)",
		c.Category, strings.Join(names, " or "))
}

// ValidationError reports every missing machine category of a topology.
type ValidationError struct {
	Missing []MissingCategory
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("topology validation failed:\n  %s", strings.Join(e.Lines(), "\n  "))
}

// Lines returns one message per missing category.
func (e *ValidationError) Lines() []string {
	lines := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		lines[i] = c.Message()
	}
	return lines
}

var requiredCategories = []MissingCategory{
	{Category: "boot", Roles: []Role{RoleBoot}},
	{Category: "master", Roles: []Role{RoleMaster}},
	{Category: "agent", Roles: []Role{RoleAgentPrivate, RoleAgentPublic}},
}

// Validate checks that there is at least one boot machine, one master and one
// agent of either kind. It returns a *ValidationError listing every missing
// category.
func (t *Topology) Validate() error {
	var missing []MissingCategory
	for _, c := range requiredCategories {
		if len(t.ByRole(c.Roles...)) == 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
