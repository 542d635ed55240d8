// Package install drives a cluster installation across a validated
// topology.
//
// An Orchestrator advances through a fixed sequence of states:
//
//	ConfigGenerated -> Distributed -> Deployed -> PostflightVerified -> Complete
//
// The deployment step branches on the install method. web starts the
// installer service on the boot machine and stops once it answers. ssh_push
// runs the installer's preflight, deploy and postflight steps from the boot
// machine. ssh_pull serves the artifacts from the boot machine and installs
// every node itself, masters first, then agents, then a remote health check
// on every node.
//
// Per-machine work runs through async.Run with MaxInstallThreads workers.
// A phase with any failed task ends the run; later phases are never
// dispatched. Nothing is retried except readiness polling.
package install
