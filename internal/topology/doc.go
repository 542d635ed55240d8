// Package topology defines the typed machine inventory an install run acts on.
//
// A [Topology] is an ordered set of [Machine] values, each carrying a role
// (boot, master, agent-private, agent-public), its provider-reported and
// private-network addresses, and the [Communicator] used to run commands on
// it. [Topology.Validate] enforces the minimum shape of a cluster before any
// work is dispatched, and [ResolveAddress] picks the address other nodes use
// to reach a machine.
package topology
