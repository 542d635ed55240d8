// Package async runs batches of independent tasks on a bounded worker pool.
//
// [Run] executes every [Task] of a queue with at most maxWorkers running at
// once, waits for all of them, and returns a [RunResult] holding every
// failure with the task that produced it. A failing task never cancels its
// siblings. The install orchestrator uses it for each per-machine phase.
package async
