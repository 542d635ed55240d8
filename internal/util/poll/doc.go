// Package poll waits for a readiness condition with a deadline.
//
// [UntilReady] invokes a check immediately and then every interval until it
// reports ready or the timeout elapses. Check errors mean "not ready yet";
// only the deadline is fatal and is reported as [ErrTimeout].
package poll
